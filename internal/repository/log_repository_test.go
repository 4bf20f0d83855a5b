package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmind/mcp-platform/internal/model"
	"github.com/opsmind/mcp-platform/internal/repository"
	"github.com/opsmind/mcp-platform/internal/testutil"
)

func seedLogs(t *testing.T, repos *repository.Repositories) (toolID uint) {
	t.Helper()

	tl := &model.Tool{Name: "seed-tool", Type: "system", Status: "active"}
	require.NoError(t, repos.Tool.Create(tl))

	entries := []*model.Log{
		{ToolID: &tl.ID, Level: "info", Message: "tool started"},
		{ToolID: &tl.ID, Level: "error", Message: "tool crashed"},
		{Level: "warning", Message: "disk usage high"},
		{Level: "info", Message: "scheduled cleanup finished"},
	}
	for _, e := range entries {
		require.NoError(t, repos.Log.Create(e))
	}
	return tl.ID
}

func TestLogList_Filters(t *testing.T) {
	repos := testutil.NewTestRepos(t)
	toolID := seedLogs(t, repos)

	t.Run("by level", func(t *testing.T) {
		logs, total, err := repos.Log.List(repository.LogFilter{Level: "info"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, logs, 2)
	})

	t.Run("by tool", func(t *testing.T) {
		_, total, err := repos.Log.List(repository.LogFilter{ToolID: &toolID}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("by message search", func(t *testing.T) {
		logs, total, err := repos.Log.List(repository.LogFilter{Search: "crash"}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "tool crashed", logs[0].Message)
	})

	t.Run("pagination", func(t *testing.T) {
		logs, total, err := repos.Log.List(repository.LogFilter{}, 2, 3)
		require.NoError(t, err)
		assert.EqualValues(t, 4, total)
		assert.Len(t, logs, 1)
	})
}

func TestLogClear(t *testing.T) {
	t.Run("by level", func(t *testing.T) {
		repos := testutil.NewTestRepos(t)
		seedLogs(t, repos)

		count, err := repos.Log.Clear(repository.ClearFilter{Level: "info"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)

		_, total, err := repos.Log.List(repository.LogFilter{}, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("by tool", func(t *testing.T) {
		repos := testutil.NewTestRepos(t)
		toolID := seedLogs(t, repos)

		count, err := repos.Log.Clear(repository.ClearFilter{ToolID: &toolID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("everything", func(t *testing.T) {
		repos := testutil.NewTestRepos(t)
		seedLogs(t, repos)

		count, err := repos.Log.Clear(repository.ClearFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 4, count)
	})
}

// 删除工具后关联日志保留
func TestLogsSurviveToolDeletion(t *testing.T) {
	repos := testutil.NewTestRepos(t)
	toolID := seedLogs(t, repos)

	require.NoError(t, repos.Tool.Delete(toolID))

	_, total, err := repos.Log.List(repository.LogFilter{ToolID: &toolID}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
