package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmind/mcp-platform/internal/testutil"
)

func createTool(t *testing.T, app *testutil.App, token string, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/tools", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)
}

func TestToolCreate(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	t.Run("minimal payload", func(t *testing.T) {
		created := createTool(t, app, admin, map[string]interface{}{"name": "fs-reader"})
		assert.Equal(t, "fs-reader", created["name"])
		// 缺省类型回退为 other，新工具总是非活跃
		assert.Equal(t, "other", created["type"])
		assert.Equal(t, "inactive", created["status"])
	})

	t.Run("unknown type falls back to other", func(t *testing.T) {
		created := createTool(t, app, admin, map[string]interface{}{"name": "odd", "type": "quantum"})
		assert.Equal(t, "other", created["type"])
	})

	t.Run("missing name", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPost, "/api/tools", admin, map[string]interface{}{"type": "network"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "tool name is required", decode(t, w)["error"])
	})

	t.Run("duplicate name conflicts without creating a second row", func(t *testing.T) {
		createTool(t, app, admin, map[string]interface{}{"name": "dup"})

		w := doJSON(t, app, http.MethodPost, "/api/tools", admin, map[string]interface{}{"name": "dup"})
		assert.Equal(t, http.StatusConflict, w.Code)

		w = doJSON(t, app, http.MethodGet, "/api/tools?search=dup", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode(t, w)["total"])
	})
}

func TestToolList_Pagination(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	for i := 0; i < 15; i++ {
		createTool(t, app, admin, map[string]interface{}{
			"name": fmt.Sprintf("tool-%02d", i),
			"type": "network",
		})
	}

	w := doJSON(t, app, http.MethodGet, "/api/tools?page=2", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.EqualValues(t, 15, body["total"])
	assert.EqualValues(t, 2, body["pages"])
	assert.EqualValues(t, 2, body["page"])
	assert.Len(t, body["items"], 5)
}

func TestToolList_Filters(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	createTool(t, app, admin, map[string]interface{}{"name": "netcat", "type": "network"})
	createTool(t, app, admin, map[string]interface{}{"name": "reader", "type": "filesystem"})

	t.Run("by type", func(t *testing.T) {
		w := doJSON(t, app, http.MethodGet, "/api/tools?type=network", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode(t, w)["total"])
	})

	t.Run("unknown type filter is ignored", func(t *testing.T) {
		w := doJSON(t, app, http.MethodGet, "/api/tools?type=quantum", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 2, decode(t, w)["total"])
	})

	t.Run("by name search", func(t *testing.T) {
		w := doJSON(t, app, http.MethodGet, "/api/tools?search=net", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 1, decode(t, w)["total"])
	})
}

func TestToolUpdate(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	created := createTool(t, app, admin, map[string]interface{}{"name": "alpha", "type": "network"})
	id := int(created["id"].(float64))
	path := fmt.Sprintf("/api/tools/%d", id)

	t.Run("partial update", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPut, path, admin, map[string]interface{}{"description": "updated"})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "updated", body["description"])
		assert.Equal(t, "alpha", body["name"])
	})

	t.Run("invalid type is ignored", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPut, path, admin, map[string]interface{}{"type": "quantum"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "network", decode(t, w)["type"])
	})

	t.Run("rename to existing name conflicts", func(t *testing.T) {
		createTool(t, app, admin, map[string]interface{}{"name": "beta"})

		w := doJSON(t, app, http.MethodPut, path, admin, map[string]interface{}{"name": "beta"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPut, "/api/tools/9999", admin, map[string]interface{}{"name": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToolLifecycle(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	created := createTool(t, app, admin, map[string]interface{}{"name": "runner", "type": "system"})
	id := int(created["id"].(float64))

	t.Run("invoke inactive tool", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tools/%d/invoke", id), admin, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "tool 'runner' is not active", decode(t, w)["error"])
	})

	t.Run("activate then invoke", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tools/%d/activate", id), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tools/%d/invoke", id), admin, map[string]interface{}{
			"params": map[string]interface{}{"arg": "value"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		result := body["result"].(map[string]interface{})
		assert.Equal(t, true, result["success"])

		w = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tools/%d/status", id), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		status := decode(t, w)
		assert.Equal(t, "active", status["status"])
		assert.EqualValues(t, 1, status["invoke_count"])
		assert.NotNil(t, status["last_invoked_at"])
	})

	t.Run("deactivate", func(t *testing.T) {
		w := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tools/%d/deactivate", id), admin, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tools/%d/status", id), admin, nil)
		assert.Equal(t, "inactive", decode(t, w)["status"])
	})
}

func TestToolDelete(t *testing.T) {
	app := testutil.NewTestApp(t)
	admin := adminToken(t, app)

	created := createTool(t, app, admin, map[string]interface{}{"name": "victim"})
	id := int(created["id"].(float64))
	path := fmt.Sprintf("/api/tools/%d", id)

	w := doJSON(t, app, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, app, http.MethodGet, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, app, http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
