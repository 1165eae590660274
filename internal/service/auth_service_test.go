package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibeform/internal/repository/repotest"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(&repotest.UserRepo{}, "test-secret", time.Hour)
	ctx := context.Background()

	info, err := svc.Register(ctx, "  Ana@Example.com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", info.Email)

	_, err = svc.Register(ctx, "ana@example.com", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(ctx, "not-an-email", "pw")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Register(ctx, "bo@example.com", "")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := svc.Login(ctx, "ANA@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, info.ID, login.User.ID)

	claims, err := svc.ValidateUserToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, info.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestValidateUserTokenRejects(t *testing.T) {
	repo := &repotest.UserRepo{}
	svc := NewAuthService(repo, "test-secret", time.Hour)
	ctx := context.Background()
	_, err := svc.Register(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.ValidateUserToken(expired.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(repo, "other-secret", time.Hour)
	foreign, err := other.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.ValidateUserToken(foreign.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateUserToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
