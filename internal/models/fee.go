package models

import (
	"time"
)

type FeeStatus string

const (
	FeeStatusNA            FeeStatus = "N/A"
	FeeStatusPaid          FeeStatus = "Paid"
	FeeStatusPartiallyPaid FeeStatus = "Partially Paid"
	FeeStatusDefaulter     FeeStatus = "Defaulter"
)

// FeePeriod is one (student, term, academic year) billing record.
// PaidAmount only ever grows, and only through the ledger service.
type FeePeriod struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	StudentID    uint   `json:"student_id" gorm:"not null;index;uniqueIndex:idx_fee_periods_student_term_year"`
	Term         string `json:"term" gorm:"not null;size:50;uniqueIndex:idx_fee_periods_student_term_year"`
	AcademicYear string `json:"academic_year" gorm:"not null;size:20;uniqueIndex:idx_fee_periods_student_term_year"`

	ExpectedAmount  float64    `json:"expected_amount" gorm:"not null"`
	PaidAmount      float64    `json:"paid_amount" gorm:"not null;default:0"`
	LastPaymentDate *time.Time `json:"last_payment_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FeePeriod) TableName() string {
	return "fee_periods"
}

// Payment is an immutable ledger entry. Rows are appended by the ledger
// service and never updated or deleted.
type Payment struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	ReceiptNo    string  `json:"receipt_no" gorm:"uniqueIndex;not null;size:40"`
	StudentID    uint    `json:"student_id" gorm:"not null;index"`
	Term         string  `json:"term" gorm:"not null;size:50"`
	AcademicYear string  `json:"academic_year" gorm:"not null;size:20"`
	Amount       float64 `json:"amount" gorm:"not null"`

	PaymentDate time.Time `json:"payment_date" gorm:"not null;index"`
	RecordedBy  string    `json:"recorded_by" gorm:"not null;size:100"`
}

func (Payment) TableName() string {
	return "payments"
}
