package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	tests := []struct {
		flag     string
		expected Environment
	}{
		{"development", Development},
		{"test", Test},
		{"TEST", Test},
		{"production", Production},
		{"prod", Production},
		{"staging", Development},
		{"", Development},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvFlagToEnvironment(tt.flag))
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	assert.Equal(t, "development", Development.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
}

func TestDebugEnabled(t *testing.T) {
	assert.True(t, Config{Env: Development}.DebugEnabled())
	assert.True(t, Config{Env: Test}.DebugEnabled())
	assert.False(t, Config{Env: Production}.DebugEnabled())
}
