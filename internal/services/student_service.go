package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	ledger    LedgerService
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		ledger:    NewLedgerService(repo, logger, validator),
	}
}

// Register creates the student and the initial fee period for the
// enrollment term/year in one transaction.
func (s *studentService) Register(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error) {
	if req.ExpectedFee < 0 {
		return nil, NewInvalidAmountError("expected_fee", req.ExpectedFee, "expected fee cannot be negative")
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError("request", errs.Error())
	}

	student := &models.Student{
		RegNo:         strings.TrimSpace(req.RegNo),
		Name:          strings.TrimSpace(req.Name),
		Class:         req.Class,
		Term:          req.Term,
		AcademicYear:  req.AcademicYear,
		GuardianName:  strings.TrimSpace(req.GuardianName),
		GuardianPhone: strings.TrimSpace(req.GuardianPhone),
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, NewValidationError("date_of_birth", "must be a date in YYYY-MM-DD form")
		}
		student.DateOfBirth = datatypes.Date(dob)
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Student().Create(ctx, student); err != nil {
			return err
		}

		period := &models.FeePeriod{
			StudentID:      student.ID,
			Term:           req.Term,
			AcademicYear:   req.AcademicYear,
			ExpectedAmount: req.ExpectedFee,
		}
		return tx.FeePeriod().Create(ctx, period)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("student", "reg_no", student.RegNo)
		}
		return nil, err
	}

	s.logger.Info("Student registered",
		"student_id", student.ID,
		"reg_no", student.RegNo,
		"expected_fee", req.ExpectedFee)

	return student, nil
}

// Get returns the student with the per-period breakdown, the aggregated
// status and the payment ledger, as shown on the detail page.
func (s *studentService) Get(ctx context.Context, id uint) (*StudentDetailResponse, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	breakdown, err := s.ledger.FeeBreakdown(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := s.ledger.StudentStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.ledger.PaymentHistory(ctx, id, repositories.PaymentFilters{})
	if err != nil {
		return nil, err
	}

	return &StudentDetailResponse{
		Student:        student,
		FeeBreakdown:   breakdown,
		CurrentStatus:  *status,
		PaymentHistory: payments,
	}, nil
}

func (s *studentService) Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError("request", errs.Error())
	}

	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if req.RegNo != nil {
		student.RegNo = strings.TrimSpace(*req.RegNo)
	}
	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, NewValidationError("date_of_birth", "must be a date in YYYY-MM-DD form")
		}
		student.DateOfBirth = datatypes.Date(dob)
	}
	if req.Class != nil {
		student.Class = *req.Class
	}
	if req.Term != nil {
		student.Term = *req.Term
	}
	if req.AcademicYear != nil {
		student.AcademicYear = *req.AcademicYear
	}
	if req.GuardianName != nil {
		student.GuardianName = strings.TrimSpace(*req.GuardianName)
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = strings.TrimSpace(*req.GuardianPhone)
	}

	if err := s.repo.Student().Update(ctx, student); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("student", "reg_no", student.RegNo)
		}
		return nil, err
	}

	s.logger.Info("Student updated", "student_id", student.ID, "reg_no", student.RegNo)

	return student, nil
}

// Delete removes the student and every owned fee period and payment in a
// single transaction (explicit cascade, no FK ordering constraint).
func (s *studentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.Student().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrStudentNotFound
		}
		return err
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.FeePeriod().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		if err := tx.Payment().DeleteByStudent(ctx, id); err != nil {
			return err
		}
		return tx.Student().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Student deleted with fee and payment records", "student_id", id)

	return nil
}

// List aggregates fee totals per student and derives each status. The
// feeStatus filter applies after derivation since status is never stored.
func (s *studentService) List(ctx context.Context, filters repositories.StudentFilters, feeStatus *models.FeeStatus) (*StudentListResponse, error) {
	totals, err := s.repo.Student().ListFeeTotals(ctx, filters)
	if err != nil {
		return nil, err
	}

	students := make([]*StudentResponse, 0, len(totals))
	for _, t := range totals {
		status := ComputeFeeStatus(t.TotalExpected, t.TotalPaid)
		if feeStatus != nil && status.Status != *feeStatus {
			continue
		}
		students = append(students, &StudentResponse{
			Student: &models.Student{
				ID:           t.StudentID,
				RegNo:        t.RegNo,
				Name:         t.Name,
				Class:        t.Class,
				Term:         t.Term,
				AcademicYear: t.AcademicYear,
			},
			FeeStatus:   status.Status,
			Expected:    t.TotalExpected,
			Paid:        t.TotalPaid,
			Outstanding: status.Outstanding,
		})
	}

	classes, err := s.repo.Student().DistinctClasses(ctx)
	if err != nil {
		return nil, err
	}
	terms, err := s.repo.Student().DistinctTerms(ctx)
	if err != nil {
		return nil, err
	}

	return &StudentListResponse{
		Students: students,
		Total:    len(students),
		Classes:  classes,
		Terms:    terms,
	}, nil
}
