package services

import (
	"context"
	"time"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

// ===== REQUEST DTOs (validated in internal/validator) =====

type LoginRequest = validator.LoginRequest
type CreateUserRequest = validator.CreateUserRequest
type RegisterStudentRequest = validator.RegisterStudentRequest
type UpdateStudentRequest = validator.UpdateStudentRequest
type RecordPaymentRequest = validator.RecordPaymentRequest

// ===== FEE LEDGER DTOs =====

// FeeStatusResult is the derived classification of a fee balance.
// Status is never persisted; it is recomputed from expected/paid.
type FeeStatusResult struct {
	Status      models.FeeStatus `json:"status"`
	Expected    float64          `json:"expected"`
	Paid        float64          `json:"paid"`
	Outstanding float64          `json:"outstanding"`
}

// PaymentResult reports a committed ledger write. Overpaid is a warning,
// not an error: the transaction has already committed when it is set.
type PaymentResult struct {
	Payment     *models.Payment `json:"payment"`
	Period      FeePeriodDetail `json:"period"`
	Overpaid    bool            `json:"overpaid"`
	Outstanding float64         `json:"outstanding"`
}

// FeePeriodDetail is one billing period with its derived status.
type FeePeriodDetail struct {
	ID              uint             `json:"id"`
	Term            string           `json:"term"`
	AcademicYear    string           `json:"academic_year"`
	ExpectedAmount  float64          `json:"expected_amount"`
	PaidAmount      float64          `json:"paid_amount"`
	Outstanding     float64          `json:"outstanding"`
	Status          models.FeeStatus `json:"status"`
	LastPaymentDate *time.Time       `json:"last_payment_date"`
}

// ===== STUDENT DTOs =====

type StudentResponse struct {
	*models.Student
	FeeStatus   models.FeeStatus `json:"fee_status"`
	Expected    float64          `json:"total_expected_fee"`
	Paid        float64          `json:"total_paid_fee"`
	Outstanding float64          `json:"outstanding_fee"`
}

type StudentListResponse struct {
	Students []*StudentResponse `json:"students"`
	Total    int                `json:"total"`
	Classes  []string           `json:"classes"`
	Terms    []string           `json:"terms"`
}

type StudentDetailResponse struct {
	Student        *models.Student   `json:"student"`
	FeeBreakdown   []FeePeriodDetail `json:"fee_breakdown"`
	CurrentStatus  FeeStatusResult   `json:"current_status"`
	PaymentHistory []*models.Payment `json:"payment_history"`
}

// ===== DASHBOARD DTOs =====

type OutstandingStudent struct {
	RegNo        string  `json:"reg_no"`
	Name         string  `json:"name"`
	Class        string  `json:"class"`
	Term         string  `json:"term"`
	AcademicYear string  `json:"academic_year"`
	Outstanding  float64 `json:"outstanding_amount"`
}

type DashboardResponse struct {
	TotalStudents      int64 `json:"total_students"`
	PaidCount          int   `json:"paid_students_count"`
	PartiallyPaidCount int   `json:"partially_paid_count"`
	DefaulterCount     int   `json:"defaulters_count"`

	TotalExpectedRevenue    float64 `json:"total_expected_revenue"`
	TotalReceivedRevenue    float64 `json:"total_received_revenue"`
	TotalOutstandingRevenue float64 `json:"total_outstanding_revenue"`

	Defaulters     []OutstandingStudent          `json:"defaulters"`
	PartiallyPaid  []OutstandingStudent          `json:"partially_paid"`
	RecentPayments []*repositories.RecentPayment `json:"recent_payments"`
}

// ===== SERVICE INTERFACES =====

// LedgerService owns fee-status derivation and the payment ledger.
type LedgerService interface {
	// RecordPayment applies a payment to one fee period and appends a
	// ledger entry, atomically. recordedBy is the authenticated username.
	RecordPayment(ctx context.Context, studentID uint, req *RecordPaymentRequest, recordedBy string) (*PaymentResult, error)

	// StudentStatus sums expected/paid across all of the student's fee
	// periods and classifies the balance.
	StudentStatus(ctx context.Context, studentID uint) (*FeeStatusResult, error)

	// FeeBreakdown returns per-period detail rows, newest period first.
	FeeBreakdown(ctx context.Context, studentID uint) ([]FeePeriodDetail, error)

	// OutstandingPeriods returns only periods with a positive balance.
	OutstandingPeriods(ctx context.Context, studentID uint) ([]FeePeriodDetail, error)

	// PaymentHistory returns ledger entries, newest first.
	PaymentHistory(ctx context.Context, studentID uint, filters repositories.PaymentFilters) ([]*models.Payment, error)
}

// AccountService owns user credentials and authentication.
type AccountService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// EnsureAdmin creates the bootstrap admin account if no user with
	// that username exists yet.
	EnsureAdmin(ctx context.Context, username, password string) error
}

// StudentService owns student identity records and their lifecycle.
type StudentService interface {
	Register(ctx context.Context, req *RegisterStudentRequest) (*models.Student, error)
	Get(ctx context.Context, id uint) (*StudentDetailResponse, error)
	Update(ctx context.Context, id uint, req *UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters repositories.StudentFilters, feeStatus *models.FeeStatus) (*StudentListResponse, error)
}

// DashboardService aggregates revenue and status counts for admins.
type DashboardService interface {
	Overview(ctx context.Context) (*DashboardResponse, error)
}

// ReportService exports fee-status workbooks.
type ReportService interface {
	// StudentFeeReport honors the same filters as the student list,
	// including the post-derivation fee-status filter.
	StudentFeeReport(ctx context.Context, filters repositories.StudentFilters, feeStatus *models.FeeStatus) ([]byte, error)
}

// ServiceManager wires every service to shared dependencies.
type ServiceManager interface {
	Ledger() LedgerService
	Account() AccountService
	Student() StudentService
	Dashboard() DashboardService
	Report() ReportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
