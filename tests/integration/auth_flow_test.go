package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/clinic/backend/internal/application/identity"
	"github.com/clinic/backend/internal/infrastructure/auth"
	"github.com/clinic/backend/internal/infrastructure/config"
	"github.com/clinic/backend/internal/infrastructure/persistence"
)

// TestAuthFlow covers registration, login, token refresh and logout
// against a real database.
func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	ctx := context.Background()

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	tenantRepo := persistence.NewGormTenantRepository(testDB.DB)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "integration-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "clinic-backend-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, zap.NewNop())

	registered, err := svc.Register(ctx, identityapp.RegisterInput{
		ClinicName: "Smile Dental",
		Email:      "owner@smile.test",
		Name:       "Dr. Mehta",
		Password:   "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", registered.User.Role)

	login, err := svc.Login(ctx, identityapp.LoginInput{
		Email:    "owner@smile.test",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, registered.TenantID, login.User.TenantID)

	refreshed, err := svc.RefreshToken(ctx, identityapp.RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	claims, err := jwtService.ValidateAccessToken(login.AccessToken)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, identityapp.LogoutInput{
		UserID:   login.User.ID,
		TenantID: login.User.TenantID,
		TokenJTI: claims.ID,
	}))

	blacklisted, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	_, err = svc.Login(ctx, identityapp.LoginInput{
		Email:    "owner@smile.test",
		Password: "wrong-password",
	})
	assert.Error(t, err)
}
