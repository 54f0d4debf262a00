package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a
	// unique constraint (username, reg_no, receipt_no).
	ErrDuplicateKey = errors.New("duplicate key")
)

// IsNotFoundError reports whether err means a missing row, regardless of
// whether it bubbled up from gorm or from a repository.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err means a unique-constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// TranslateError normalizes driver errors into repository sentinels so
// services never have to import gorm to classify a failure.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	// postgres unique_violation surfaces as SQLSTATE 23505 when the gorm
	// translator is disabled
	if strings.Contains(err.Error(), "23505") || strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicateKey
	}
	return err
}
