package services

import (
	"context"
	"strings"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
)

// fakeRepository is an in-memory Repository used by service tests. Its
// WithTransaction runs the callback against a deep copy and only commits
// the copy on success, so rollback semantics are observable.
type fakeRepository struct {
	state *fakeState
}

type fakeState struct {
	nextID   uint
	users    []*models.User
	students []*models.Student
	periods  []*models.FeePeriod
	payments []*models.Payment
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{state: &fakeState{nextID: 1}}
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{nextID: s.nextID}
	for _, u := range s.users {
		uc := *u
		c.users = append(c.users, &uc)
	}
	for _, st := range s.students {
		sc := *st
		c.students = append(c.students, &sc)
	}
	for _, p := range s.periods {
		pc := *p
		c.periods = append(c.periods, &pc)
	}
	for _, p := range s.payments {
		pc := *p
		c.payments = append(c.payments, &pc)
	}
	return c
}

func (s *fakeState) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (f *fakeRepository) User() repositories.UserRepository           { return &fakeUserRepo{f.state} }
func (f *fakeRepository) Student() repositories.StudentRepository     { return &fakeStudentRepo{f.state} }
func (f *fakeRepository) FeePeriod() repositories.FeePeriodRepository { return &fakePeriodRepo{f.state} }
func (f *fakeRepository) Payment() repositories.PaymentRepository     { return &fakePaymentRepo{f.state} }
func (f *fakeRepository) Dashboard() repositories.DashboardRepository {
	return &fakeDashboardRepo{f.state}
}

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	clone := f.state.clone()
	if err := fn(&fakeRepository{state: clone}); err != nil {
		return err
	}
	f.state = clone
	return nil
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

// ===== USERS =====

type fakeUserRepo struct{ s *fakeState }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicateKey
		}
	}
	user.ID = r.s.id()
	r.s.users = append(r.s.users, user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ===== STUDENTS =====

type fakeStudentRepo struct{ s *fakeState }

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	for _, st := range r.s.students {
		if st.RegNo == student.RegNo {
			return repositories.ErrDuplicateKey
		}
	}
	student.ID = r.s.id()
	r.s.students = append(r.s.students, student)
	return nil
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	for _, st := range r.s.students {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) GetByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	for _, st := range r.s.students {
		if st.RegNo == regNo {
			return st, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	for _, st := range r.s.students {
		if st.RegNo == student.RegNo && st.ID != student.ID {
			return repositories.ErrDuplicateKey
		}
	}
	for i, st := range r.s.students {
		if st.ID == student.ID {
			r.s.students[i] = student
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id uint) error {
	for i, st := range r.s.students {
		if st.ID == id {
			r.s.students = append(r.s.students[:i], r.s.students[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeStudentRepo) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	var out []*models.Student
	for _, st := range r.s.students {
		if matchesFilters(st, filters) {
			out = append(out, st)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStudentRepo) ListFeeTotals(ctx context.Context, filters repositories.StudentFilters) ([]*repositories.StudentFeeTotals, error) {
	var out []*repositories.StudentFeeTotals
	for _, st := range r.s.students {
		if !matchesFilters(st, filters) {
			continue
		}
		t := &repositories.StudentFeeTotals{
			StudentID:    st.ID,
			RegNo:        st.RegNo,
			Name:         st.Name,
			Class:        st.Class,
			Term:         st.Term,
			AcademicYear: st.AcademicYear,
		}
		for _, p := range r.s.periods {
			if p.StudentID == st.ID {
				t.TotalExpected += p.ExpectedAmount
				t.TotalPaid += p.PaidAmount
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeStudentRepo) DistinctClasses(ctx context.Context) ([]string, error) {
	return distinct(r.s.students, func(s *models.Student) string { return s.Class }), nil
}

func (r *fakeStudentRepo) DistinctTerms(ctx context.Context) ([]string, error) {
	return distinct(r.s.students, func(s *models.Student) string { return s.Term }), nil
}

func (r *fakeStudentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.s.students)), nil
}

func matchesFilters(st *models.Student, filters repositories.StudentFilters) bool {
	if filters.Search != "" {
		q := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(st.Name), q) &&
			!strings.Contains(strings.ToLower(st.RegNo), q) &&
			!strings.Contains(strings.ToLower(st.GuardianName), q) {
			return false
		}
	}
	if filters.Class != nil && st.Class != *filters.Class {
		return false
	}
	if filters.Term != nil && st.Term != *filters.Term {
		return false
	}
	return true
}

func distinct(students []*models.Student, key func(*models.Student) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, st := range students {
		k := key(st)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// ===== FEE PERIODS =====

type fakePeriodRepo struct{ s *fakeState }

func (r *fakePeriodRepo) Create(ctx context.Context, period *models.FeePeriod) error {
	for _, p := range r.s.periods {
		if p.StudentID == period.StudentID && p.Term == period.Term && p.AcademicYear == period.AcademicYear {
			return repositories.ErrDuplicateKey
		}
	}
	period.ID = r.s.id()
	r.s.periods = append(r.s.periods, period)
	return nil
}

func (r *fakePeriodRepo) GetByID(ctx context.Context, id uint) (*models.FeePeriod, error) {
	for _, p := range r.s.periods {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePeriodRepo) GetByPeriod(ctx context.Context, studentID uint, term, academicYear string) (*models.FeePeriod, error) {
	for _, p := range r.s.periods {
		if p.StudentID == studentID && p.Term == term && p.AcademicYear == academicYear {
			return p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakePeriodRepo) GetByStudent(ctx context.Context, studentID uint) ([]*models.FeePeriod, error) {
	var out []*models.FeePeriod
	for _, p := range r.s.periods {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePeriodRepo) Update(ctx context.Context, period *models.FeePeriod) error {
	for i, p := range r.s.periods {
		if p.ID == period.ID {
			r.s.periods[i] = period
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakePeriodRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	var kept []*models.FeePeriod
	for _, p := range r.s.periods {
		if p.StudentID != studentID {
			kept = append(kept, p)
		}
	}
	r.s.periods = kept
	return nil
}

// ===== PAYMENTS =====

type fakePaymentRepo struct{ s *fakeState }

func (r *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	payment.ID = r.s.id()
	r.s.payments = append(r.s.payments, payment)
	return nil
}

func (r *fakePaymentRepo) GetByStudent(ctx context.Context, studentID uint, filters repositories.PaymentFilters) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range r.s.payments {
		if p.StudentID != studentID {
			continue
		}
		if filters.Term != nil && p.Term != *filters.Term {
			continue
		}
		if filters.AcademicYear != nil && p.AcademicYear != *filters.AcademicYear {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByPeriod(ctx context.Context, studentID uint, term, academicYear string) (float64, error) {
	var sum float64
	for _, p := range r.s.payments {
		if p.StudentID == studentID && p.Term == term && p.AcademicYear == academicYear {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) DeleteByStudent(ctx context.Context, studentID uint) error {
	var kept []*models.Payment
	for _, p := range r.s.payments {
		if p.StudentID != studentID {
			kept = append(kept, p)
		}
	}
	r.s.payments = kept
	return nil
}

// ===== DASHBOARD =====

type fakeDashboardRepo struct{ s *fakeState }

func (r *fakeDashboardRepo) GetTotalStudents(ctx context.Context) (int64, error) {
	return int64(len(r.s.students)), nil
}

func (r *fakeDashboardRepo) GetStudentFeeTotals(ctx context.Context) ([]*repositories.StudentFeeTotals, error) {
	return (&fakeStudentRepo{r.s}).ListFeeTotals(ctx, repositories.StudentFilters{})
}

func (r *fakeDashboardRepo) GetRecentPayments(ctx context.Context, limit int) ([]*repositories.RecentPayment, error) {
	var out []*repositories.RecentPayment
	for i := len(r.s.payments) - 1; i >= 0 && len(out) < limit; i-- {
		p := r.s.payments[i]
		name := ""
		for _, st := range r.s.students {
			if st.ID == p.StudentID {
				name = st.Name
			}
		}
		out = append(out, &repositories.RecentPayment{Payment: *p, StudentName: name})
	}
	return out, nil
}
