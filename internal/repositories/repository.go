package repositories

import "context"

// Repository aggregates all repository interfaces behind one handle.
type Repository interface {
	// Account directory
	User() UserRepository

	// Student records
	Student() StudentRepository

	// Fee ledger
	FeePeriod() FeePeriodRepository
	Payment() PaymentRepository

	// Dashboard aggregates
	Dashboard() DashboardRepository

	// Transaction support: fn runs against a repository bound to one
	// transaction; any error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
