package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("RAYCASTER_TEST_STR", "value")

	assert.Equal(t, "value", GetEnv("RAYCASTER_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", GetEnv("RAYCASTER_TEST_UNSET", "fallback"))

	t.Setenv("RAYCASTER_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("RAYCASTER_TEST_EMPTY", "fallback"), "set but empty is still set")
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("MAX_RAY_LENGTH", "12.5")
	assert.Equal(t, 12.5, GetEnvFloat("MAX_RAY_LENGTH", DefaultMaxRay))

	t.Setenv("MAX_RAY_LENGTH", "far")
	assert.Equal(t, DefaultMaxRay, GetEnvFloat("MAX_RAY_LENGTH", DefaultMaxRay))

	assert.Equal(t, 3.0, GetEnvFloat("RAYCASTER_TEST_UNSET", 3))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("RAY_FAN", "7")
	assert.Equal(t, 7, GetEnvInt("RAY_FAN", DefaultFan))

	t.Setenv("RAY_FAN", "7.5")
	assert.Equal(t, DefaultFan, GetEnvInt("RAY_FAN", DefaultFan))

	assert.Equal(t, 2, GetEnvInt("RAYCASTER_TEST_UNSET", 2))
}
