package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.History.Driver)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "venues", cfg.Storage.Bucket)
	assert.Equal(t, "data/conferences.json", cfg.Venues.DefaultConferences)
	assert.Equal(t, "data/journals.json", cfg.Venues.DefaultJournals)
	assert.Empty(t, cfg.Venues.Bibliography)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("VENUES_BIBLIOGRAPHY", "~/library.bib")
	t.Setenv("HISTORY_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "~/library.bib", cfg.Venues.Bibliography)
	assert.True(t, cfg.History.Enabled)
}
