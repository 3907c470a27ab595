package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/logging"
)

type SavingsConfigService struct {
	configs configRepository
	users   userRepository
}

func NewSavingsConfigService(configs configRepository, users userRepository) *SavingsConfigService {
	return &SavingsConfigService{configs: configs, users: users}
}

// CreateDefaultConfig creates the active-by-default round-up configuration
// for a new user.
func (s *SavingsConfigService) CreateDefaultConfig(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("CreateDefaultConfig: %w", err)
	}

	exists, err := s.configs.ExistsActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("CreateDefaultConfig: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("CreateDefaultConfig: %w", domain.ErrConfigAlreadyActive)
	}

	cfg := domain.NewSavingsConfig(userID)
	if err := s.configs.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("CreateDefaultConfig: %w", err)
	}

	logging.FromContext(ctx).Info("savings config created", "config_id", cfg.ID, "user_id", userID)
	return cfg, nil
}

// Activate switches a configuration on. Activating an already-active
// configuration fails with ErrConfigAlreadyActive.
func (s *SavingsConfigService) Activate(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error) {
	cfg, err := s.configs.GetByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("Activate: %w", err)
	}
	if err := cfg.Activate(); err != nil {
		return nil, fmt.Errorf("Activate: %w", err)
	}
	if err := s.configs.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("Activate: %w", err)
	}

	logging.FromContext(ctx).Info("savings config activated", "config_id", cfg.ID, "user_id", cfg.UserID)
	return cfg, nil
}

func (s *SavingsConfigService) Deactivate(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error) {
	cfg, err := s.configs.GetByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("Deactivate: %w", err)
	}
	if err := cfg.Deactivate(); err != nil {
		return nil, fmt.Errorf("Deactivate: %w", err)
	}
	if err := s.configs.Update(ctx, cfg); err != nil {
		return nil, fmt.Errorf("Deactivate: %w", err)
	}

	logging.FromContext(ctx).Info("savings config deactivated", "config_id", cfg.ID, "user_id", cfg.UserID)
	return cfg, nil
}

func (s *SavingsConfigService) GetByID(ctx context.Context, configID uuid.UUID) (*domain.SavingsConfig, error) {
	cfg, err := s.configs.GetByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return cfg, nil
}

func (s *SavingsConfigService) GetActiveConfig(ctx context.Context, userID uuid.UUID) (*domain.SavingsConfig, error) {
	cfg, err := s.configs.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("GetActiveConfig: %w", err)
	}
	return cfg, nil
}
