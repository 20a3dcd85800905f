package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"horaris.manresa.cat/internal/appconf"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := parseConfig(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, appconf.Development, cfg.Env)
	assert.Equal(t, "data.json", cfg.DataURL)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.True(t, cfg.ExpandableTrips, "routes start behind per-trip toggles")
	assert.False(t, cfg.ServiceFilter)
	assert.True(t, cfg.DebugEnabled())
}

func TestParseConfigEnvironment(t *testing.T) {
	cfg, err := parseConfig(nil, envMap(map[string]string{
		"HORARIS_PORT":             "8080",
		"HORARIS_ENV":              "prod",
		"HORARIS_DATA":             "https://example.com/data.json",
		"HORARIS_EXPANDABLE_TRIPS": "false",
		"HORARIS_RATE_LIMIT":       "not a number",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, appconf.Production, cfg.Env)
	assert.Equal(t, "https://example.com/data.json", cfg.DataURL)
	assert.False(t, cfg.ExpandableTrips)
	assert.Equal(t, 20, cfg.RateLimit, "unparseable values fall back to the default")
	assert.False(t, cfg.DebugEnabled())
}

func TestParseConfigFlagsWin(t *testing.T) {
	cfg, err := parseConfig(
		[]string{"-port", "9000", "-service-filter", "-table", "-expandable-trips=false", "-env", "test"},
		envMap(map[string]string{"HORARIS_PORT": "8080"}),
	)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, appconf.Test, cfg.Env)
	assert.True(t, cfg.ServiceFilter)
	assert.True(t, cfg.Table)
	assert.False(t, cfg.ExpandableTrips)
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	_, err := parseConfig([]string{"-port", "0"}, envMap(nil))
	assert.Error(t, err)

	_, err = parseConfig([]string{"-data", ""}, envMap(nil))
	assert.Error(t, err)

	_, err = parseConfig([]string{"-no-such-flag"}, envMap(nil))
	assert.Error(t, err)
}
