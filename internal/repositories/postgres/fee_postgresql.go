package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

type FeePeriodPostgreSQL struct {
	db *gorm.DB
}

func NewFeePeriodPostgreSQL(db *gorm.DB) repositories.FeePeriodRepository {
	return &FeePeriodPostgreSQL{db: db}
}

func (f *FeePeriodPostgreSQL) Create(ctx context.Context, period *models.FeePeriod) error {
	if err := f.db.WithContext(ctx).Create(period).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (f *FeePeriodPostgreSQL) GetByID(ctx context.Context, id uint) (*models.FeePeriod, error) {
	var period models.FeePeriod
	if err := f.db.WithContext(ctx).First(&period, id).Error; err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &period, nil
}

func (f *FeePeriodPostgreSQL) GetByPeriod(ctx context.Context, studentID uint, term, academicYear string) (*models.FeePeriod, error) {
	var period models.FeePeriod
	if err := f.db.WithContext(ctx).
		Where("student_id = ? AND term = ? AND academic_year = ?", studentID, term, academicYear).
		First(&period).Error; err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &period, nil
}

func (f *FeePeriodPostgreSQL) GetByStudent(ctx context.Context, studentID uint) ([]*models.FeePeriod, error) {
	var periods []*models.FeePeriod
	if err := f.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("academic_year DESC, term DESC").
		Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to get fee periods: %w", err)
	}
	return periods, nil
}

func (f *FeePeriodPostgreSQL) Update(ctx context.Context, period *models.FeePeriod) error {
	if err := f.db.WithContext(ctx).Save(period).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (f *FeePeriodPostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := f.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.FeePeriod{}).Error; err != nil {
		return fmt.Errorf("failed to delete fee periods: %w", err)
	}
	return nil
}

type PaymentPostgreSQL struct {
	db *gorm.DB
}

func NewPaymentPostgreSQL(db *gorm.DB) repositories.PaymentRepository {
	return &PaymentPostgreSQL{db: db}
}

func (p *PaymentPostgreSQL) Create(ctx context.Context, payment *models.Payment) error {
	if err := p.db.WithContext(ctx).Create(payment).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (p *PaymentPostgreSQL) GetByStudent(ctx context.Context, studentID uint, filters repositories.PaymentFilters) ([]*models.Payment, error) {
	query := p.db.WithContext(ctx).Where("student_id = ?", studentID)

	if filters.Term != nil {
		query = query.Where("term = ?", *filters.Term)
	}
	if filters.AcademicYear != nil {
		query = query.Where("academic_year = ?", *filters.AcademicYear)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var payments []*models.Payment
	if err := query.Order("payment_date DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

func (p *PaymentPostgreSQL) SumByPeriod(ctx context.Context, studentID uint, term, academicYear string) (float64, error) {
	var sum float64
	if err := p.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("student_id = ? AND term = ? AND academic_year = ?", studentID, term, academicYear).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return sum, nil
}

func (p *PaymentPostgreSQL) DeleteByStudent(ctx context.Context, studentID uint) error {
	if err := p.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Delete(&models.Payment{}).Error; err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	return nil
}
