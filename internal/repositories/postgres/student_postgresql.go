package postgres

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Create(student).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).
		Where("reg_no = ?", regNo).
		First(&student).Error; err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &student, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	if err := s.db.WithContext(ctx).Save(student).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (s *StudentPostgreSQL) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return repositories.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var students []*models.Student
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Student{})
	query = s.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	query = s.applyPaginationAndSort(query, filters)

	if err := query.Find(&students).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}

	return students, total, nil
}

// ListFeeTotals returns one row per student with SUM(expected) and
// SUM(paid) over all fee periods. A LEFT JOIN keeps students that have no
// fee rows; their totals coalesce to zero.
func (s *StudentPostgreSQL) ListFeeTotals(ctx context.Context, filters repositories.StudentFilters) ([]*repositories.StudentFeeTotals, error) {
	var totals []*repositories.StudentFeeTotals

	query := s.db.WithContext(ctx).
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
		Group("students.id")

	query = s.applyFilters(query, filters)

	if err := query.Order("students.name ASC").Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate student fee totals: %w", err)
	}

	return totals, nil
}

func (s *StudentPostgreSQL) DistinctClasses(ctx context.Context) ([]string, error) {
	var classes []string
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Distinct("class").
		Order("class").
		Pluck("class", &classes).Error; err != nil {
		return nil, fmt.Errorf("failed to get classes: %w", err)
	}
	return classes, nil
}

func (s *StudentPostgreSQL) DistinctTerms(ctx context.Context) ([]string, error) {
	var terms []string
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Distinct("term").
		Order("term").
		Pluck("term", &terms).Error; err != nil {
		return nil, fmt.Errorf("failed to get terms: %w", err)
	}
	return terms, nil
}

func (s *StudentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

func (s *StudentPostgreSQL) applyFilters(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"students.name ILIKE ? OR students.reg_no ILIKE ? OR students.guardian_name ILIKE ?",
			like, like, like,
		)
	}
	if filters.Class != nil {
		query = query.Where("students.class = ?", *filters.Class)
	}
	if filters.Term != nil {
		query = query.Where("students.term = ?", *filters.Term)
	}
	return query
}

func (s *StudentPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	sortBy := filters.SortBy
	switch sortBy {
	case "name", "reg_no", "created_at":
	default:
		sortBy = "name"
	}

	sortOrder := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	return query
}
