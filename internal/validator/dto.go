package validator

import (
	"github.com/edupay/fees-service/internal/models"
)

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest creates a staff account. Admin only.
type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,min=2,max=100"`
	Password string          `json:"password" validate:"required,min=8,max=128"`
	Role     models.UserRole `json:"role" validate:"omitempty,user_role"`
}

// RegisterStudentRequest creates a student plus the initial fee period
// for the enrollment term/year.
type RegisterStudentRequest struct {
	RegNo        string `json:"reg_no" validate:"required,reg_no"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	DateOfBirth  string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Class        string `json:"class" validate:"required,max=50"`
	Term         string `json:"term" validate:"required,max=50"`
	AcademicYear string `json:"academic_year" validate:"required,max=20"`

	GuardianName  string `json:"guardian_name" validate:"omitempty,max=200"`
	GuardianPhone string `json:"guardian_phone" validate:"omitempty,max=50"`

	// ExpectedFee may be zero (status N/A until a fee is set) but never
	// negative.
	ExpectedFee float64 `json:"expected_fee" validate:"gte=0"`
}

// UpdateStudentRequest edits identity and demographics. Fee amounts are
// not editable here; balances change only through payments.
type UpdateStudentRequest struct {
	RegNo        *string `json:"reg_no" validate:"omitempty,reg_no"`
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	DateOfBirth  *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Class        *string `json:"class" validate:"omitempty,max=50"`
	Term         *string `json:"term" validate:"omitempty,max=50"`
	AcademicYear *string `json:"academic_year" validate:"omitempty,max=20"`

	GuardianName  *string `json:"guardian_name" validate:"omitempty,max=200"`
	GuardianPhone *string `json:"guardian_phone" validate:"omitempty,max=50"`
}

// RecordPaymentRequest applies a payment against one fee period.
type RecordPaymentRequest struct {
	Term         string  `json:"term" validate:"required,max=50"`
	AcademicYear string  `json:"academic_year" validate:"required,max=20"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}
