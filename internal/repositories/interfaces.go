package repositories

import (
	"context"

	"github.com/edupay/fees-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	Search    string  `json:"search"` // matches name, reg_no or guardian_name
	Class     *string `json:"class"`
	Term      *string `json:"term"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "name", "reg_no", "created_at"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type PaymentFilters struct {
	Term         *string `json:"term"`
	AcademicYear *string `json:"academic_year"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

// ===== SHARED AGGREGATE STRUCTS =====

// StudentFeeTotals carries the per-student SUM of expected and paid
// amounts over all fee periods. Students without fee rows report zeros.
type StudentFeeTotals struct {
	StudentID     uint    `json:"student_id"`
	RegNo         string  `json:"reg_no"`
	Name          string  `json:"name"`
	Class         string  `json:"class"`
	Term          string  `json:"term"`
	AcademicYear  string  `json:"academic_year"`
	TotalExpected float64 `json:"total_expected"`
	TotalPaid     float64 `json:"total_paid"`
}

// RecentPayment is a ledger entry joined with the student it belongs to,
// for the dashboard activity feed.
type RecentPayment struct {
	models.Payment
	StudentName string `json:"student_name"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
	ListFeeTotals(ctx context.Context, filters StudentFilters) ([]*StudentFeeTotals, error)
	DistinctClasses(ctx context.Context) ([]string, error)
	DistinctTerms(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type FeePeriodRepository interface {
	Create(ctx context.Context, period *models.FeePeriod) error
	GetByID(ctx context.Context, id uint) (*models.FeePeriod, error)
	GetByPeriod(ctx context.Context, studentID uint, term, academicYear string) (*models.FeePeriod, error)
	GetByStudent(ctx context.Context, studentID uint) ([]*models.FeePeriod, error)
	Update(ctx context.Context, period *models.FeePeriod) error
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByStudent(ctx context.Context, studentID uint, filters PaymentFilters) ([]*models.Payment, error)
	SumByPeriod(ctx context.Context, studentID uint, term, academicYear string) (float64, error)
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type DashboardRepository interface {
	GetTotalStudents(ctx context.Context) (int64, error)
	GetStudentFeeTotals(ctx context.Context) ([]*StudentFeeTotals, error)
	GetRecentPayments(ctx context.Context, limit int) ([]*RecentPayment, error)
}
