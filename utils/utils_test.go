package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlmostEqual(t *testing.T) {
	assert.True(t, AlmostEqual(0.1+0.2, 0.3, Float64EqualityThreshold))
	assert.False(t, AlmostEqual(1, 1.1, Float64EqualityThreshold))
	assert.True(t, AlmostEqual(1, 1.1, 0.2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(30, 0, 10))
}

func TestRoundTicks(t *testing.T) {
	assert.Equal(t, 40, RoundTicks(40, 1))
	assert.Equal(t, 20, RoundTicks(40, 0.5))
	assert.Equal(t, 15, RoundTicks(30, 0.5))
	assert.Equal(t, 1, RoundTicks(1, 0.1))
	assert.Equal(t, 1, RoundTicks(0, 1))
}

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("ARENA_TEST_ENV", "set")
	assert.Equal(t, "set", GetEnvDefault("ARENA_TEST_ENV", "fallback"))

	t.Setenv("ARENA_TEST_ENV", "")
	assert.Equal(t, "fallback", GetEnvDefault("ARENA_TEST_ENV", "fallback"))
	assert.Equal(t, "fallback", GetEnvDefault("ARENA_TEST_ENV_MISSING", "fallback"))
}
