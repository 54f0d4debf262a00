package services

import (
	"context"
	"log/slog"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

const recentPaymentsLimit = 10

type dashboardService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger,
	}
}

// Overview builds the admin dashboard: totals, revenue and the defaulter
// and partially-paid lists. Classification is derived per student from the
// summed fee totals, never read from storage.
func (s *dashboardService) Overview(ctx context.Context) (*DashboardResponse, error) {
	totalStudents, err := s.repo.Dashboard().GetTotalStudents(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Dashboard().GetStudentFeeTotals(ctx)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		TotalStudents: totalStudents,
		Defaulters:    []OutstandingStudent{},
		PartiallyPaid: []OutstandingStudent{},
	}

	for _, t := range totals {
		resp.TotalExpectedRevenue += t.TotalExpected
		resp.TotalReceivedRevenue += t.TotalPaid

		status := ComputeFeeStatus(t.TotalExpected, t.TotalPaid)

		entry := OutstandingStudent{
			RegNo:        t.RegNo,
			Name:         t.Name,
			Class:        t.Class,
			Term:         t.Term,
			AcademicYear: t.AcademicYear,
			Outstanding:  status.Outstanding,
		}

		switch status.Status {
		case models.FeeStatusPaid:
			resp.PaidCount++
		case models.FeeStatusPartiallyPaid:
			resp.PartiallyPaidCount++
			resp.PartiallyPaid = append(resp.PartiallyPaid, entry)
		case models.FeeStatusDefaulter:
			resp.DefaulterCount++
			resp.Defaulters = append(resp.Defaulters, entry)
		}
	}

	if outstanding := resp.TotalExpectedRevenue - resp.TotalReceivedRevenue; outstanding > 0 {
		resp.TotalOutstandingRevenue = outstanding
	}

	recent, err := s.repo.Dashboard().GetRecentPayments(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, err
	}
	resp.RecentPayments = recent

	return resp, nil
}
