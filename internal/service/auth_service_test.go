package service

import (
	"context"
	"testing"

	"storepos/internal/apperr"
	"storepos/internal/config"
	"storepos/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCfg() *config.Config {
	return &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func TestCreateUserAndValidateLogin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, "alice", "secret", "user")
	require.NoError(t, err)
	assert.NotZero(t, id)

	ok, err := svc.ValidateLogin(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ValidateLogin(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// Missing user is indistinguishable from a wrong password.
	ok, err = svc.ValidateLogin(ctx, "nosuchuser", "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "bob", "pass1234", "user")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "bob", "other", "admin")
	assert.True(t, apperr.IsConflict(err), "duplicate username must be a conflict: %v", err)
}

func TestCreateUser_EmptyUsername(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	_, err := svc.CreateUser(context.Background(), "", "pass", "user")
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateUser_UnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	_, err := svc.CreateUser(context.Background(), "carol", "pass", "superuser")
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateUser_SaltIsPerUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	id1, err := svc.CreateUser(ctx, "u1", "samepass", "user")
	require.NoError(t, err)
	id2, err := svc.CreateUser(ctx, "u2", "samepass", "user")
	require.NoError(t, err)

	assert.NotEqual(t, repo.users[id1].Salt, repo.users[id2].Salt)
	assert.NotEqual(t, repo.users[id1].PasswordHash, repo.users[id2].PasswordHash)
}

func TestChangePassword_InvalidatesOld(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, "dave", "oldpw", "user")
	require.NoError(t, err)
	oldSalt := repo.users[id].Salt

	require.NoError(t, svc.ChangePassword(ctx, id, "newpw"))

	ok, _ := svc.ValidateLogin(ctx, "dave", "oldpw")
	assert.False(t, ok)
	ok, _ = svc.ValidateLogin(ctx, "dave", "newpw")
	assert.True(t, ok)

	// Salt rotates on every change.
	assert.NotEqual(t, oldSalt, repo.users[id].Salt)
}

func TestChangePassword_NotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	err := svc.ChangePassword(context.Background(), 999, "whatever")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListUsers_AlphabeticalByUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	for _, name := range []string{"zoe", "adam", "mike"} {
		_, err := svc.CreateUser(ctx, name, "pass", "user")
		require.NoError(t, err)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "adam", users[0].Username)
	assert.Equal(t, "mike", users[1].Username)
	assert.Equal(t, "zoe", users[2].Username)
}

func TestDeleteUser_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	id, err := svc.CreateUser(ctx, "temp", "pass", "user")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, id))
	// Second delete of the same id is a no-op, not an error.
	require.NoError(t, svc.DeleteUser(ctx, id))
	assert.Empty(t, repo.users)
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "admin123", "admin")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "admin123", "admin")
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.Error(t, err)
}

func TestRefresh_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newTestCfg())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "admin123", "admin")
	require.NoError(t, err)

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "admin", refreshed.User.Username)
}

func TestRefresh_Garbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newTestCfg())
	_, err := svc.Refresh(context.Background(), "this.is.garbage")
	assert.Error(t, err)
}
