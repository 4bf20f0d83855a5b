package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_Value(t *testing.T) {
	tests := []struct {
		name     string
		input    JSONMap
		expected interface{}
	}{
		{
			name:     "nil map stores NULL",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty map stores empty object",
			input:    JSONMap{},
			expected: "{}",
		},
		{
			name:     "nested values",
			input:    JSONMap{"timeout": float64(30), "env": map[string]interface{}{"DEBUG": "1"}},
			expected: `{"env":{"DEBUG":"1"},"timeout":30}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.input.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestJSONMap_Scan(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src := JSONMap{"command": "npx", "args": []interface{}{"-y", "server"}}
		v, err := src.Value()
		require.NoError(t, err)

		var out JSONMap
		require.NoError(t, out.Scan(v))
		assert.Equal(t, src, out)
	})

	t.Run("nil column yields nil map", func(t *testing.T) {
		var out JSONMap
		require.NoError(t, out.Scan(nil))
		assert.Nil(t, out)
	})

	t.Run("byte slice input", func(t *testing.T) {
		var out JSONMap
		require.NoError(t, out.Scan([]byte(`{"a":1}`)))
		assert.Equal(t, JSONMap{"a": float64(1)}, out)
	})

	t.Run("malformed json surfaces error", func(t *testing.T) {
		var out JSONMap
		err := out.Scan("{not json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed json")
	})
}

func TestNormalizeToolType(t *testing.T) {
	assert.Equal(t, "network", NormalizeToolType("network"))
	assert.Equal(t, "other", NormalizeToolType("bogus"))
	assert.Equal(t, "other", NormalizeToolType(""))
}

func TestNormalizeLogLevel(t *testing.T) {
	assert.Equal(t, "debug", NormalizeLogLevel("debug"))
	assert.Equal(t, "info", NormalizeLogLevel("fatal"))
}

func TestNormalizeUserRole(t *testing.T) {
	assert.Equal(t, "operator", NormalizeUserRole("operator"))
	assert.Equal(t, "viewer", NormalizeUserRole("superuser"))
}
