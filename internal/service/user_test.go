package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahorraya/savings-backend/internal/domain"
	"github.com/ahorraya/savings-backend/internal/repository"
	"github.com/ahorraya/savings-backend/internal/testutil"
)

func setupUserTest(t *testing.T, db *sql.DB) (*UserService, *SavingsConfigService) {
	t.Helper()

	users := repository.NewUserRepository(db)
	configSvc := NewSavingsConfigService(repository.NewSavingsConfigRepository(db), users)
	return NewUserService(users, configSvc), configSvc
}

func TestRegister_CreatesUserAndDefaultConfig(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userSvc, configSvc := setupUserTest(t, db)
	ctx := context.Background()

	user, err := userSvc.Register(ctx, RegisterInput{
		Username:  "maria",
		Email:     "maria@example.com",
		Password:  "password123",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.NotEqual(t, "password123", user.PasswordHash)

	cfg, err := configSvc.GetActiveConfig(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, cfg.Active)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userSvc, _ := setupUserTest(t, db)
	ctx := context.Background()

	testutil.SeedTestUser(t, db, "maria", "maria@example.com")

	_, err := userSvc.Register(ctx, RegisterInput{
		Username: "otra",
		Email:    "maria@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userSvc, _ := setupUserTest(t, db)
	ctx := context.Background()

	testutil.SeedTestUser(t, db, "maria", "maria@example.com")

	_, err := userSvc.Register(ctx, RegisterInput{
		Username: "maria",
		Email:    "otra@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameExists)
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	userSvc, _ := setupUserTest(t, db)
	ctx := context.Background()

	seeded := testutil.SeedTestUser(t, db, "maria", "maria@example.com")

	user, err := userSvc.Authenticate(ctx, "maria@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)

	_, err = userSvc.Authenticate(ctx, "maria@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = userSvc.Authenticate(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
