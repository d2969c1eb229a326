package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type authRepoStub struct {
	users map[string]models.User
}

func (s *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

func (s *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &authRepoStub{users: map[string]models.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			FullName:     "Portal Admin",
			Role:         models.RoleAdmin,
			Active:       true,
		},
		"inactive@example.com": {
			ID:           "user-2",
			Email:        "inactive@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleReviewer,
			Active:       false,
		},
	}}
	return NewAuthService(repo, nil, nil, AuthConfig{
		AccessTokenSecret: "unit-test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "scholarship-portal",
	})
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "correct-horse"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "correct-horse"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "inactive@example.com", Password: "correct-horse"})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.ValidateToken("not.a.token")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
