package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

type ledgerService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLedgerService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) LedgerService {
	return &ledgerService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ComputeFeeStatus classifies a fee balance. Missing fee rows are passed
// in as expected=0, paid=0 and classify as N/A.
//
//	expected <= 0                  -> N/A
//	outstanding <= 0               -> Paid
//	outstanding > 0 and paid > 0   -> Partially Paid
//	outstanding > 0 and paid == 0  -> Defaulter
func ComputeFeeStatus(expected, paid float64) FeeStatusResult {
	outstanding := expected - paid

	result := FeeStatusResult{
		Status:   models.FeeStatusNA,
		Expected: expected,
		Paid:     paid,
	}

	if expected > 0 {
		switch {
		case outstanding <= 0:
			result.Status = models.FeeStatusPaid
		case paid > 0:
			result.Status = models.FeeStatusPartiallyPaid
		default:
			result.Status = models.FeeStatusDefaulter
		}
	}

	if outstanding > 0 {
		result.Outstanding = outstanding
	}

	return result
}

// RecordPayment bumps the period's running balance and appends one ledger
// entry. Both writes happen in a single transaction; on any failure the
// transaction rolls back and neither is visible.
func (s *ledgerService) RecordPayment(ctx context.Context, studentID uint, req *RecordPaymentRequest, recordedBy string) (*PaymentResult, error) {
	// Amount is checked before struct validation so a bad amount reports
	// as an invalid-amount failure, not a generic validation one.
	if req.Amount <= 0 {
		return nil, NewInvalidAmountError("amount", req.Amount, "payment amount must be positive")
	}
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError("request", errs.Error())
	}

	s.logger.Info("Recording payment",
		"student_id", studentID,
		"term", req.Term,
		"academic_year", req.AcademicYear,
		"amount", req.Amount,
		"recorded_by", recordedBy)

	var result PaymentResult

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		period, err := tx.FeePeriod().GetByPeriod(ctx, studentID, req.Term, req.AcademicYear)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrFeePeriodNotFound
			}
			return err
		}

		now := time.Now()
		period.PaidAmount += req.Amount
		period.LastPaymentDate = &now

		if err := tx.FeePeriod().Update(ctx, period); err != nil {
			return err
		}

		payment := &models.Payment{
			ReceiptNo:    uuid.New().String(),
			StudentID:    studentID,
			Term:         req.Term,
			AcademicYear: req.AcademicYear,
			Amount:       req.Amount,
			PaymentDate:  now,
			RecordedBy:   recordedBy,
		}

		if err := tx.Payment().Create(ctx, payment); err != nil {
			return err
		}

		status := ComputeFeeStatus(period.ExpectedAmount, period.PaidAmount)

		result = PaymentResult{
			Payment:     payment,
			Overpaid:    period.PaidAmount > period.ExpectedAmount,
			Outstanding: status.Outstanding,
			Period: FeePeriodDetail{
				ID:              period.ID,
				Term:            period.Term,
				AcademicYear:    period.AcademicYear,
				ExpectedAmount:  period.ExpectedAmount,
				PaidAmount:      period.PaidAmount,
				Outstanding:     status.Outstanding,
				Status:          status.Status,
				LastPaymentDate: period.LastPaymentDate,
			},
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Overpaid {
		s.logger.Warn("Payment exceeds expected amount for period",
			"student_id", studentID,
			"term", req.Term,
			"academic_year", req.AcademicYear,
			"paid", result.Period.PaidAmount,
			"expected", result.Period.ExpectedAmount)
	}

	s.logger.Info("Payment recorded",
		"receipt_no", result.Payment.ReceiptNo,
		"student_id", studentID,
		"amount", req.Amount)

	return &result, nil
}

// StudentStatus aggregates expected/paid across every fee period the
// student owns and classifies the combined balance.
func (s *ledgerService) StudentStatus(ctx context.Context, studentID uint) (*FeeStatusResult, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	periods, err := s.repo.FeePeriod().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var expected, paid float64
	for _, p := range periods {
		expected += p.ExpectedAmount
		paid += p.PaidAmount
	}

	result := ComputeFeeStatus(expected, paid)
	return &result, nil
}

func (s *ledgerService) FeeBreakdown(ctx context.Context, studentID uint) ([]FeePeriodDetail, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	periods, err := s.repo.FeePeriod().GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	details := make([]FeePeriodDetail, 0, len(periods))
	for _, p := range periods {
		details = append(details, toPeriodDetail(p))
	}

	return details, nil
}

func (s *ledgerService) OutstandingPeriods(ctx context.Context, studentID uint) ([]FeePeriodDetail, error) {
	details, err := s.FeeBreakdown(ctx, studentID)
	if err != nil {
		return nil, err
	}

	outstanding := details[:0]
	for _, d := range details {
		if d.Outstanding > 0 {
			outstanding = append(outstanding, d)
		}
	}

	return outstanding, nil
}

func (s *ledgerService) PaymentHistory(ctx context.Context, studentID uint, filters repositories.PaymentFilters) ([]*models.Payment, error) {
	if _, err := s.repo.Student().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	return s.repo.Payment().GetByStudent(ctx, studentID, filters)
}

func toPeriodDetail(p *models.FeePeriod) FeePeriodDetail {
	status := ComputeFeeStatus(p.ExpectedAmount, p.PaidAmount)
	return FeePeriodDetail{
		ID:              p.ID,
		Term:            p.Term,
		AcademicYear:    p.AcademicYear,
		ExpectedAmount:  p.ExpectedAmount,
		PaidAmount:      p.PaidAmount,
		Outstanding:     status.Outstanding,
		Status:          status.Status,
		LastPaymentDate: p.LastPaymentDate,
	}
}
