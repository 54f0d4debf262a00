package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

// serviceManager implements ServiceManager
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator

	// Service instances
	ledgerService    LedgerService
	accountService   AccountService
	studentService   StudentService
	dashboardService DashboardService
	reportService    ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies
func NewServiceManager(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Initialize constructs all service instances
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	sm.ledgerService = NewLedgerService(sm.repo, sm.logger, sm.validator)
	sm.accountService = NewAccountService(sm.repo, sm.logger, sm.validator)
	sm.studentService = NewStudentService(sm.repo, sm.logger, sm.validator)
	sm.dashboardService = NewDashboardService(sm.repo, sm.logger)
	sm.reportService = NewReportService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized")

	return nil
}

func (sm *serviceManager) Ledger() LedgerService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.ledgerService
}

func (sm *serviceManager) Account() AccountService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.accountService
}

func (sm *serviceManager) Student() StudentService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.studentService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.dashboardService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.reportService
}

// Shutdown marks the manager as stopped. Services hold no background
// state, so there is nothing else to tear down.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down")

	return nil
}
