package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvPrefersLoadedFile(t *testing.T) {
	t.Setenv("VENDABOT_TEST_KEY", "from-os")
	Env = map[string]string{"VENDABOT_TEST_KEY": "from-file"}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, "from-file", GetEnv("VENDABOT_TEST_KEY", "def"))
}

func TestGetEnvFallbacks(t *testing.T) {
	Env = nil
	t.Setenv("VENDABOT_TEST_KEY", "from-os")

	assert.Equal(t, "from-os", GetEnv("VENDABOT_TEST_KEY", "def"))
	assert.Equal(t, "def", GetEnv("VENDABOT_MISSING_KEY", "def"))
}

func TestGetEnvInt(t *testing.T) {
	Env = map[string]string{"LIMIT": "25", "BROKEN": "vinte"}
	t.Cleanup(func() { Env = nil })

	assert.Equal(t, 25, GetEnvInt("LIMIT", 20))
	assert.Equal(t, 20, GetEnvInt("BROKEN", 20))
	assert.Equal(t, 20, GetEnvInt("ABSENT", 20))
}
