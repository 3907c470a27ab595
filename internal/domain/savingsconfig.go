package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavingsConfig is the per-user toggle for the round-up policy. At most one
// active config exists per user; the services enforce that, not the entity.
type SavingsConfig struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Active    bool
	Version   int
	CreatedAt time.Time
}

// NewSavingsConfig returns a config for userID, active by default.
func NewSavingsConfig(userID uuid.UUID) *SavingsConfig {
	return &SavingsConfig{
		ID:        uuid.New(),
		UserID:    userID,
		Active:    true,
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
}

// Activate turns the config on and bumps the version.
func (c *SavingsConfig) Activate() error {
	if c.Active {
		return ErrConfigAlreadyActive
	}
	c.Active = true
	c.Version++
	return nil
}

// Deactivate turns the config off and bumps the version.
func (c *SavingsConfig) Deactivate() error {
	if !c.Active {
		return ErrConfigAlreadyInactive
	}
	c.Active = false
	c.Version++
	return nil
}
