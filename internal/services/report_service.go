package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

const feeReportSheet = "Fee Status"

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		logger: logger,
	}
}

var feeReportHeader = []string{
	"Reg No", "Name", "Class", "Term", "Academic Year",
	"Expected", "Paid", "Outstanding", "Status",
}

// StudentFeeReport renders one workbook row per student with the derived
// fee status, honoring the same filters as the student list. The status
// filter applies after derivation since status is never stored.
func (s *reportService) StudentFeeReport(ctx context.Context, filters repositories.StudentFilters, feeStatus *models.FeeStatus) ([]byte, error) {
	totals, err := s.repo.Student().ListFeeTotals(ctx, filters)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", feeReportSheet); err != nil {
		return nil, fmt.Errorf("failed to name report sheet: %w", err)
	}

	for col, title := range feeReportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(feeReportSheet, cell, title); err != nil {
			return nil, err
		}
	}

	rowNum := 2
	for _, t := range totals {
		status := ComputeFeeStatus(t.TotalExpected, t.TotalPaid)
		if feeStatus != nil && status.Status != *feeStatus {
			continue
		}
		row := []interface{}{
			t.RegNo, t.Name, t.Class, t.Term, t.AcademicYear,
			t.TotalExpected, t.TotalPaid, status.Outstanding, string(status.Status),
		}

		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(feeReportSheet, cell, value); err != nil {
				return nil, err
			}
		}
		rowNum++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize fee report: %w", err)
	}

	s.logger.Info("Fee report generated", "students", rowNum-2)

	return buf.Bytes(), nil
}
