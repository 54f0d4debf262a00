package services

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/edupay/fees-service/internal/models"
	"github.com/edupay/fees-service/internal/repositories"
	"github.com/edupay/fees-service/internal/validator"
)

type accountService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAccountService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AccountService {
	return &accountService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// CreateUser stores a new account with a bcrypt hash. The plaintext
// password is never persisted.
func (s *accountService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, NewValidationError("request", errs.Error())
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, NewConflictError("user", "username", req.Username)
		}
		return nil, err
	}

	s.logger.Info("User created", "username", user.Username, "role", user.Role)

	return user, nil
}

// Authenticate verifies credentials by exact username match and bcrypt
// comparison. A missing user and a wrong password return the same error.
func (s *accountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *accountService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account on first start.
func (s *accountService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	exists, err := s.repo.User().ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.CreateUser(ctx, &CreateUserRequest{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// Another instance may have won the race; that is fine.
		if IsConflictError(err) {
			return nil
		}
		return err
	}

	s.logger.Info("Bootstrap admin account created", "username", username)

	return nil
}
