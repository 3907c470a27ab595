package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/repository"
	"github.com/ahorraya/savings-backend/internal/testutil"
)

func TestSavingsConfigLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewSavingsConfigService(
		repository.NewSavingsConfigRepository(db),
		repository.NewUserRepository(db),
	)
	ctx := context.Background()

	user := testutil.SeedTestUser(t, db, "maria", "maria@example.com")

	cfg, err := svc.CreateDefaultConfig(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, cfg.Active)
	assert.Equal(t, 1, cfg.Version)

	// A second active config for the same user is refused.
	_, err = svc.CreateDefaultConfig(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrConfigAlreadyActive)

	deactivated, err := svc.Deactivate(ctx, cfg.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)
	assert.Equal(t, 2, deactivated.Version)

	_, err = svc.Deactivate(ctx, cfg.ID)
	assert.ErrorIs(t, err, domain.ErrConfigAlreadyInactive)

	_, err = svc.GetActiveConfig(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reactivated, err := svc.Activate(ctx, cfg.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.Active)
	assert.Equal(t, 3, reactivated.Version)

	_, err = svc.Activate(ctx, cfg.ID)
	assert.ErrorIs(t, err, domain.ErrConfigAlreadyActive)
}

func TestCreateDefaultConfig_UnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewSavingsConfigService(
		repository.NewSavingsConfigRepository(db),
		repository.NewUserRepository(db),
	)

	_, err := svc.CreateDefaultConfig(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
