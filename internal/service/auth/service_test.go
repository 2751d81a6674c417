package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinichq/clinic-api/internal/model"
	"github.com/clinichq/clinic-api/internal/repository/fake"
	pkgauth "github.com/clinichq/clinic-api/pkg/auth"
	apperrors "github.com/clinichq/clinic-api/pkg/errors"
	"github.com/clinichq/clinic-api/pkg/security"
)

func newAuthService(t *testing.T) (*Service, *fake.UserRepo) {
	t.Helper()
	users := fake.NewUserRepo()
	hasher := security.NewBcryptHasher(4)
	tokens := pkgauth.NewJWTService("test-secret", 1)

	hash, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	users.Add(&model.User{
		ID: 1, Username: "jones@clinic.local", FullName: "Dr. Jones",
		PasswordHash: hash, Role: model.RoleDoctor, Status: model.UserStatusActive,
	})
	return NewService(users, hasher, tokens), users
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "jones@clinic.local", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jones@clinic.local", resp.Username)
	assert.Equal(t, "Doctor", resp.Role)

	claims, err := pkgauth.NewJWTService("test-secret", 1).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "Doctor", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "jones@clinic.local", Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestLoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "nobody", Password: "whatever",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid username or password")
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users := newAuthService(t)
	users.Users[1].Status = model.UserStatusInactive

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Username: "jones@clinic.local", Password: "correct horse",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "inactive")
}
