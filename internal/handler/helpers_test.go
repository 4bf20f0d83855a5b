package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsmind/mcp-platform/internal/service/auth"
	"github.com/opsmind/mcp-platform/internal/testutil"
)

// doJSON 发送带 JSON 请求体和令牌的请求
func doJSON(t *testing.T, app *testutil.App, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

// decode 解析响应体
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// adminToken 以内置管理员身份登录
func adminToken(t *testing.T, app *testutil.App) string {
	t.Helper()
	return login(t, app, "admin", "admin123")
}

// login 登录并返回令牌
func login(t *testing.T, app *testutil.App, username, password string) string {
	t.Helper()

	w := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

// tokenForRole 创建指定角色的用户并返回其令牌
func tokenForRole(t *testing.T, app *testutil.App, username, role string) string {
	t.Helper()

	user, err := app.Services.Auth.Register(t.Context(), &auth.RegisterRequest{
		Username: username,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)

	token, err := app.Services.Auth.GenerateToken(user)
	require.NoError(t, err)
	return token
}
