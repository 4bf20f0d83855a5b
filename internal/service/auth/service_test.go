package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmind/mcp-platform/internal/service/auth"
	"github.com/opsmind/mcp-platform/internal/testutil"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(testutil.NewTestRepos(t), testutil.TestConfig().JWT)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *auth.RegisterRequest
	}{
		{"missing username", &auth.RegisterRequest{Password: "secret1"}},
		{"missing password", &auth.RegisterRequest{Username: "alice"}},
		{"username too short", &auth.RegisterRequest{Username: "ab", Password: "secret1"}},
		{"username too long", &auth.RegisterRequest{Username: strings.Repeat("a", 21), Password: "secret1"}},
		{"username with illegal chars", &auth.RegisterRequest{Username: "ali ce!", Password: "secret1"}},
		{"password too short", &auth.RegisterRequest{Username: "alice", Password: "12345"}},
		{"password too long", &auth.RegisterRequest{Username: "alice", Password: strings.Repeat("x", 31)}},
		{"bad email", &auth.RegisterRequest{Username: "alice", Password: "secret1", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, auth.ErrInvalid)
		})
	}
}

func TestRegister_Boundaries(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// 3 和 20 个字符均为合法长度
	for _, username := range []string{"abc", strings.Repeat("u", 20)} {
		user, err := svc.Register(ctx, &auth.RegisterRequest{Username: username, Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, username, user.Username)
		assert.Equal(t, "viewer", user.Role)
		assert.True(t, user.IsActive)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "other99"})
	assert.ErrorIs(t, err, auth.ErrUsernameExists)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &auth.RegisterRequest{Username: "bob", Password: "secret1", Email: "a@example.com"})
	assert.ErrorIs(t, err, auth.ErrEmailExists)
}

func TestRegister_InvalidRoleFallsBack(t *testing.T) {
	svc := newService(t)

	user, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Username: "carol", Password: "secret1", Role: "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, "viewer", user.Role)
}

func TestLogin(t *testing.T) {
	repos := testutil.NewTestRepos(t)
	svc := auth.NewService(repos, testutil.TestConfig().JWT)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1", Role: "operator"})
	require.NoError(t, err)

	t.Run("success returns user and token", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "alice", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
		assert.NotEmpty(t, token)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, _, err1 := svc.Login(ctx, "alice", "wrongpw")
		_, _, err2 := svc.Login(ctx, "nobody", "secret1")
		assert.ErrorIs(t, err1, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, err2, auth.ErrInvalidCredentials)
	})

	t.Run("disabled account", func(t *testing.T) {
		registered.IsActive = false
		require.NoError(t, repos.User.Update(registered))

		_, _, err := svc.Login(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, auth.ErrAccountDisabled)

		registered.IsActive = true
		require.NoError(t, repos.User.Update(registered))
	})
}

func TestValidateToken(t *testing.T) {
	repos := testutil.NewTestRepos(t)
	svc := auth.NewService(repos, testutil.TestConfig().JWT)
	ctx := context.Background()

	user, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	t.Run("valid token resolves user", func(t *testing.T) {
		got, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged := signToken(t, user.ID, "another_secret", time.Now().Add(time.Hour))
		_, err := svc.ValidateToken(ctx, forged)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := signToken(t, user.ID, "test_secret", time.Now().Add(-time.Minute))
		_, err := svc.ValidateToken(ctx, expired)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("disabled user rejected", func(t *testing.T) {
		user.IsActive = false
		require.NoError(t, repos.User.Update(user))

		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestChangePassword(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "wrong", "newsecret")
		assert.ErrorIs(t, err, auth.ErrWrongPassword)
	})

	t.Run("new password too short", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "secret1", "short")
		assert.ErrorIs(t, err, auth.ErrInvalid)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, user.ID, "secret1", "newsecret"))

		_, _, err := svc.Login(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "alice", "newsecret")
		assert.NoError(t, err)
	})
}

func TestUpdateUser(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &auth.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	t.Run("invalid role is ignored", func(t *testing.T) {
		role := "superuser"
		updated, err := svc.UpdateUser(ctx, user.ID, &auth.UpdateUserRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "viewer", updated.Role)
	})

	t.Run("valid role applied", func(t *testing.T) {
		role := "operator"
		updated, err := svc.UpdateUser(ctx, user.ID, &auth.UpdateUserRequest{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "operator", updated.Role)
	})

	t.Run("email clash with another user", func(t *testing.T) {
		_, err := svc.Register(ctx, &auth.RegisterRequest{Username: "bob", Password: "secret1", Email: "bob@example.com"})
		require.NoError(t, err)

		email := "bob@example.com"
		_, err = svc.UpdateUser(ctx, user.ID, &auth.UpdateUserRequest{Email: &email})
		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})
}
// signToken 构造指定密钥和过期时间的令牌
func signToken(t *testing.T, userID uint, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
