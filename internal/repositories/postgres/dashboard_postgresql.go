package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardPostgreSQL(db *gorm.DB) repositories.DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetTotalStudents(ctx context.Context) (int64, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get total students: %w", err)
	}

	return count, nil
}

// GetStudentFeeTotals aggregates expected/paid per student across all fee
// periods. Status classification happens in the service layer; this query
// only sums.
func (r *dashboardRepository) GetStudentFeeTotals(ctx context.Context) ([]*repositories.StudentFeeTotals, error) {
	var totals []*repositories.StudentFeeTotals

	if err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Select(`students.id AS student_id,
			students.reg_no,
			students.name,
			students.class,
			students.term,
			students.academic_year,
			COALESCE(SUM(fee_periods.expected_amount), 0) AS total_expected,
			COALESCE(SUM(fee_periods.paid_amount), 0) AS total_paid`).
		Joins("LEFT JOIN fee_periods ON fee_periods.student_id = students.id").
		Group("students.id").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to get student fee totals: %w", err)
	}

	return totals, nil
}

func (r *dashboardRepository) GetRecentPayments(ctx context.Context, limit int) ([]*repositories.RecentPayment, error) {
	var payments []*repositories.RecentPayment

	if err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("payments.*, students.name AS student_name").
		Joins("JOIN students ON students.id = payments.student_id").
		Order("payments.payment_date DESC").
		Limit(limit).
		Scan(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent payments: %w", err)
	}

	return payments, nil
}
