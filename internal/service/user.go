package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type configCreator interface {
	CreateDefaultConfig(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error)
}

type UserService struct {
	users   userRepository
	configs configCreator
}

func NewUserService(users userRepository, configs configCreator) *UserService {
	return &UserService{users: users, configs: configs}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user and, best effort, their default round-up
// configuration. A config creation failure is logged and swallowed; the
// user can still toggle savings on later.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	log := logging.FromContext(ctx)

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("Register: %w", domain.ErrEmailExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Register: check email: %w", err)
	}

	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, fmt.Errorf("Register: %w", domain.ErrUsernameExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("Register: check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register: hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Status:       domain.UserStatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("Register: %w", err)
	}

	if _, err := s.configs.CreateDefaultConfig(ctx, user.ID); err != nil {
		log.Warn("default savings config creation failed", "user_id", user.ID, "error", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies email/password credentials. Unknown emails and bad
// passwords both return ErrNotFound so callers cannot tell them apart.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("Authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("Authenticate: %w", domain.ErrNotFound)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return user, nil
}
