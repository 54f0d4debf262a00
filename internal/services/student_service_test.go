package services

import (
	"context"
	"testing"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

func registerRequest(regNo string) *RegisterStudentRequest {
	return &RegisterStudentRequest{
		RegNo:        regNo,
		Name:         "Jane Student",
		DateOfBirth:  "2014-03-12",
		Class:        "P4",
		Term:         "Term 1",
		AcademicYear: "2026",
		GuardianName: "John Guardian",
		ExpectedFee:  50000,
	}
}

func TestStudentService_Register(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())

	student, err := svc.Register(ctx, registerRequest("S-2001"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if student.ID == 0 {
		t.Error("student ID not assigned")
	}

	// The enrollment fee period must exist alongside the student.
	period, err := repo.FeePeriod().GetByPeriod(ctx, student.ID, "Term 1", "2026")
	if err != nil {
		t.Fatalf("initial fee period missing: %v", err)
	}
	if period.ExpectedAmount != 50000 {
		t.Errorf("expected amount = %v, want 50000", period.ExpectedAmount)
	}
	if period.PaidAmount != 0 {
		t.Errorf("paid amount = %v, want 0", period.PaidAmount)
	}
}

func TestStudentService_Register_DuplicateRegNo(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())

	first, err := svc.Register(ctx, registerRequest("S-2002"))
	if err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}

	req := registerRequest("S-2002")
	req.Name = "Another Student"
	if _, err := svc.Register(ctx, req); !IsConflictError(err) {
		t.Fatalf("duplicate reg_no error = %v, want conflict", err)
	}

	// The first registration is untouched and no orphan rows exist.
	got, err := repo.Student().GetByRegNo(ctx, "S-2002")
	if err != nil {
		t.Fatalf("first student lost: %v", err)
	}
	if got.ID != first.ID || got.Name != "Jane Student" {
		t.Errorf("first student mutated: id=%d name=%q", got.ID, got.Name)
	}
	periods, _ := repo.FeePeriod().GetByStudent(ctx, first.ID)
	if len(periods) != 1 {
		t.Errorf("student has %d fee periods, want 1", len(periods))
	}
}

func TestStudentService_Register_InvalidInput(t *testing.T) {
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())

	t.Run("negative expected fee", func(t *testing.T) {
		req := registerRequest("S-2003")
		req.ExpectedFee = -500
		_, err := svc.Register(context.Background(), req)
		if !IsInvalidAmountError(err) {
			t.Errorf("Register error = %v, want invalid amount error", err)
		}
	})

	t.Run("reg_no with whitespace", func(t *testing.T) {
		req := registerRequest("S 2003")
		if _, err := svc.Register(context.Background(), req); !IsValidationError(err) {
			t.Errorf("Register error = %v, want validation error", err)
		}
	})

	t.Run("malformed date of birth", func(t *testing.T) {
		req := registerRequest("S-2004")
		req.DateOfBirth = "12/03/2014"
		if _, err := svc.Register(context.Background(), req); !IsValidationError(err) {
			t.Errorf("Register error = %v, want validation error", err)
		}
	})
}

func TestStudentService_Get(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())
	ledger := NewLedgerService(repo, testLogger(), validator.New())

	student, err := svc.Register(ctx, registerRequest("S-2005"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := ledger.RecordPayment(ctx, student.ID, &RecordPaymentRequest{Term: "Term 1", AcademicYear: "2026", Amount: 20000}, "bursar"); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}
	// A second period must fold into the aggregated status.
	if err := repo.FeePeriod().Create(ctx, &models.FeePeriod{
		StudentID:      student.ID,
		Term:           "Term 2",
		AcademicYear:   "2026",
		ExpectedAmount: 10000,
	}); err != nil {
		t.Fatalf("seed second period: %v", err)
	}

	detail, err := svc.Get(ctx, student.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.CurrentStatus.Status != models.FeeStatusPartiallyPaid {
		t.Errorf("status = %q, want %q", detail.CurrentStatus.Status, models.FeeStatusPartiallyPaid)
	}
	if detail.CurrentStatus.Expected != 60000 || detail.CurrentStatus.Paid != 20000 {
		t.Errorf("aggregated expected=%v paid=%v, want 60000/20000",
			detail.CurrentStatus.Expected, detail.CurrentStatus.Paid)
	}
	if detail.CurrentStatus.Outstanding != 40000 {
		t.Errorf("outstanding = %v, want 40000", detail.CurrentStatus.Outstanding)
	}
	if len(detail.FeeBreakdown) != 2 {
		t.Errorf("breakdown has %d periods, want 2", len(detail.FeeBreakdown))
	}
	if len(detail.PaymentHistory) != 1 {
		t.Errorf("history has %d payments, want 1", len(detail.PaymentHistory))
	}

	if _, err := svc.Get(ctx, 9999); err != ErrStudentNotFound {
		t.Errorf("Get(unknown) = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())

	student, err := svc.Register(ctx, registerRequest("S-2006"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(ctx, registerRequest("S-2007")); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	newName := "Jane Renamed"
	newClass := "P5"
	updated, err := svc.Update(ctx, student.ID, &UpdateStudentRequest{Name: &newName, Class: &newClass})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != newName || updated.Class != newClass {
		t.Errorf("update not applied: name=%q class=%q", updated.Name, updated.Class)
	}
	if updated.RegNo != "S-2006" {
		t.Errorf("untouched reg_no changed to %q", updated.RegNo)
	}

	// Taking another student's reg_no must conflict.
	taken := "S-2007"
	if _, err := svc.Update(ctx, student.ID, &UpdateStudentRequest{RegNo: &taken}); !IsConflictError(err) {
		t.Errorf("reg_no collision error = %v, want conflict", err)
	}

	if _, err := svc.Update(ctx, 9999, &UpdateStudentRequest{Name: &newName}); err != ErrStudentNotFound {
		t.Errorf("Update(unknown) = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_Delete_Cascades(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())
	ledger := NewLedgerService(repo, testLogger(), validator.New())

	student, err := svc.Register(ctx, registerRequest("S-2008"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := ledger.RecordPayment(ctx, student.ID, &RecordPaymentRequest{Term: "Term 1", AcademicYear: "2026", Amount: 5000}, "bursar"); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	// An unrelated student must survive the cascade.
	other, err := svc.Register(ctx, registerRequest("S-2009"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := repo.Student().GetByID(ctx, student.ID); !repositories.IsNotFoundError(err) {
		t.Errorf("student still present after delete: %v", err)
	}
	periods, _ := repo.FeePeriod().GetByStudent(ctx, student.ID)
	if len(periods) != 0 {
		t.Errorf("fee periods remain after delete: %d", len(periods))
	}
	payments, _ := repo.Payment().GetByStudent(ctx, student.ID, repositories.PaymentFilters{})
	if len(payments) != 0 {
		t.Errorf("payments remain after delete: %d", len(payments))
	}

	if _, err := repo.Student().GetByID(ctx, other.ID); err != nil {
		t.Errorf("unrelated student removed: %v", err)
	}
	otherPeriods, _ := repo.FeePeriod().GetByStudent(ctx, other.ID)
	if len(otherPeriods) != 1 {
		t.Errorf("unrelated student has %d fee periods, want 1", len(otherPeriods))
	}

	if err := svc.Delete(ctx, student.ID); err != ErrStudentNotFound {
		t.Errorf("Delete(deleted) = %v, want ErrStudentNotFound", err)
	}
}

func TestStudentService_List_StatusFilter(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewStudentService(repo, testLogger(), validator.New())
	ledger := NewLedgerService(repo, testLogger(), validator.New())

	paid, _ := svc.Register(ctx, registerRequest("S-3001"))
	partial, _ := svc.Register(ctx, registerRequest("S-3002"))
	if _, err := svc.Register(ctx, registerRequest("S-3003")); err != nil { // defaulter
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := ledger.RecordPayment(ctx, paid.ID, &RecordPaymentRequest{Term: "Term 1", AcademicYear: "2026", Amount: 50000}, "bursar"); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}
	if _, err := ledger.RecordPayment(ctx, partial.ID, &RecordPaymentRequest{Term: "Term 1", AcademicYear: "2026", Amount: 10000}, "bursar"); err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	all, err := svc.List(ctx, repositories.StudentFilters{}, nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if all.Total != 3 {
		t.Errorf("unfiltered total = %d, want 3", all.Total)
	}

	tests := []struct {
		status    models.FeeStatus
		wantRegNo string
	}{
		{models.FeeStatusPaid, "S-3001"},
		{models.FeeStatusPartiallyPaid, "S-3002"},
		{models.FeeStatusDefaulter, "S-3003"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			status := tt.status
			resp, err := svc.List(ctx, repositories.StudentFilters{}, &status)
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if len(resp.Students) != 1 {
				t.Fatalf("got %d students, want 1", len(resp.Students))
			}
			if resp.Students[0].RegNo != tt.wantRegNo {
				t.Errorf("got %q, want %q", resp.Students[0].RegNo, tt.wantRegNo)
			}
			if resp.Students[0].FeeStatus != tt.status {
				t.Errorf("derived status = %q, want %q", resp.Students[0].FeeStatus, tt.status)
			}
		})
	}
}
