package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
	appErrors "github.com/finki-scheduling/exam-scheduling-api/pkg/errors"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(nil, nil, AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "exam-scheduling-api",
		Accounts: []AuthAccount{
			{Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin},
		},
	})
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	service := newAuthFixture(t)

	resp, err := service.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := service.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownAccount(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "secret-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.Login(context.Background(), models.LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	service := newAuthFixture(t)

	_, err := service.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsOtherSecret(t *testing.T) {
	service := newAuthFixture(t)
	other := NewAuthService(nil, nil, AuthConfig{
		AccessTokenSecret: "different-secret",
		AccessTokenExpiry: time.Hour,
		Accounts:          service.config.Accounts,
	})

	resp, err := other.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = service.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}
