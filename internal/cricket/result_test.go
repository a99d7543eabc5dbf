package cricket_test

import (
	"testing"

	"github.com/arjunmehra/stumped/internal/cricket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInningsResult(t *testing.T) {
	t.Run("single exact winner", func(t *testing.T) {
		res := cricket.ComputeInningsResult(intPtr(100), map[string]int{"a": 100, "b": 95, "c": 105})
		require.NotNil(t, res)
		assert.Equal(t, []string{"a"}, res.Winners)
		require.NotNil(t, res.ClosestDiff)
		assert.Equal(t, 0, *res.ClosestDiff)
	})

	t.Run("tied guesses share the win", func(t *testing.T) {
		res := cricket.ComputeInningsResult(intPtr(100), map[string]int{"a": 95, "b": 105})
		require.NotNil(t, res)
		assert.Equal(t, []string{"a", "b"}, res.Winners)
		assert.Equal(t, 5, *res.ClosestDiff)
	})

	t.Run("nil actual score", func(t *testing.T) {
		res := cricket.ComputeInningsResult(nil, map[string]int{"a": 95})
		assert.Nil(t, res)
	})

	t.Run("no predictions", func(t *testing.T) {
		res := cricket.ComputeInningsResult(intPtr(100), map[string]int{})
		require.NotNil(t, res)
		assert.Empty(t, res.Winners)
		assert.Nil(t, res.ClosestDiff)
	})

	t.Run("winners are sorted deterministically", func(t *testing.T) {
		res := cricket.ComputeInningsResult(intPtr(200), map[string]int{"z": 195, "a": 205, "m": 205})
		require.NotNil(t, res)
		assert.Equal(t, []string{"a", "m", "z"}, res.Winners)
	})
}
