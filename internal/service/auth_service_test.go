package service

import (
	"coachpro_backend/internal/config"
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg)
}

func TestRegisterAndLogin_RoundTrip(t *testing.T) {
	svc := newAuthFixture(t)

	user := &model.User{Name: "Dana", Email: "dana@example.com", Password: "swordfish99"}
	require.NoError(t, svc.Register(context.Background(), user))
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "swordfish99", user.Password)

	token, err := svc.Login(context.Background(), "dana@example.com", "swordfish99")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)

	require.NoError(t, svc.Register(context.Background(), &model.User{
		Name: "Dana", Email: "dana@example.com", Password: "swordfish99",
	}))

	err := svc.Register(context.Background(), &model.User{
		Name: "Other", Email: "dana@example.com", Password: "different1",
	})
	assert.ErrorIs(t, err, ErrEmailRegistered)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	require.NoError(t, svc.Register(context.Background(), &model.User{
		Name: "Dana", Email: "dana@example.com", Password: "swordfish99",
	}))

	_, err := svc.Login(context.Background(), "dana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "swordfish99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
