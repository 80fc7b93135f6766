package config_test

import (
	"os"
	"path/filepath"
	"salon-booking/config"
	"salon-booking/hours"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a config file", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "development", cfg.Env)
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, 30, cfg.PublicSlotIncrement)
		assert.Equal(t, 10, cfg.AdminSlotIncrement)
		assert.Equal(t, 10*time.Minute, cfg.ServiceCacheTTL)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
		assert.Equal(t, 64, cfg.MaxAdminConsoles)

		table, err := cfg.Hours()
		require.NoError(t, err)
		assert.Equal(t, hours.Default, table)

		loc, err := cfg.Location()
		require.NoError(t, err)
		assert.Equal(t, "Europe/Madrid", loc.String())
	})

	t.Run("config file", func(t *testing.T) {
		dir := writeConfig(t, `
APP_PORT: "9090"
ENV: production
SERVICE_CACHE_TTL: 30s
BUSINESS_TIMEZONE: America/New_York
OPENING_HOURS:
  monday: "10-18"
  saturday: closed
`)
		cfg, err := config.Load(dir)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.AppPort)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, 30*time.Second, cfg.ServiceCacheTTL)

		table, err := cfg.Hours()
		require.NoError(t, err)
		assert.Equal(t, hours.OpenBetween(10, 18), table.HoursFor(hours.Monday))
		assert.Equal(t, hours.Closed, table.HoursFor(hours.Saturday))
		assert.Equal(t, hours.Default.HoursFor(hours.Wednesday), table.HoursFor(hours.Wednesday))
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		dir := writeConfig(t, "APP_PORT: \"9090\"\n")
		t.Setenv("APP_PORT", "7070")
		t.Setenv("PUBLIC_SLOT_INCREMENT", "15")

		t.Setenv("OPENING_HOURS", "monday=10-18, saturday=closed")
		t.Setenv("ALLOWED_ORIGINS", "https://salon.example")

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.AppPort)
		assert.Equal(t, 15, cfg.PublicSlotIncrement)
		assert.Equal(t, []string{"https://salon.example"}, cfg.AllowedOrigins)

		table, err := cfg.Hours()
		require.NoError(t, err)
		assert.Equal(t, hours.OpenBetween(10, 18), table.HoursFor(hours.Monday))
		assert.Equal(t, hours.Closed, table.HoursFor(hours.Saturday))
		assert.Equal(t, hours.Default.HoursFor(hours.Friday), table.HoursFor(hours.Friday))
	})

	t.Run("opening hours from the environment replace the file", func(t *testing.T) {
		dir := writeConfig(t, "OPENING_HOURS:\n  tuesday: \"9-13\"\n")
		t.Setenv("OPENING_HOURS", `{"monday":"10-18"}`)

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"monday": "10-18"}, cfg.OpeningHours)

		table, err := cfg.Hours()
		require.NoError(t, err)
		assert.Equal(t, hours.OpenBetween(10, 18), table.HoursFor(hours.Monday))
		assert.Equal(t, hours.Closed, table.HoursFor(hours.Tuesday))
	})

	t.Run("empty opening hours in the environment", func(t *testing.T) {
		t.Setenv("OPENING_HOURS", "")

		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)
		table, err := cfg.Hours()
		require.NoError(t, err)
		assert.Equal(t, hours.Default, table)
	})

	t.Run("malformed opening hours in the environment", func(t *testing.T) {
		t.Setenv("OPENING_HOURS", "monday 10-18")

		_, err := config.Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "opening hours")
	})

	t.Run("invalid opening hours", func(t *testing.T) {
		dir := writeConfig(t, "OPENING_HOURS:\n  funday: \"10-18\"\n")
		_, err := config.Load(dir)
		require.ErrorIs(t, err, hours.ErrUnknownWeekday)
	})

	t.Run("invalid timezone", func(t *testing.T) {
		dir := writeConfig(t, "BUSINESS_TIMEZONE: Mars/Olympus\n")
		_, err := config.Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "business timezone")
	})

	t.Run("non-positive increment", func(t *testing.T) {
		dir := writeConfig(t, "ADMIN_SLOT_INCREMENT: 0\n")
		_, err := config.Load(dir)
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := writeConfig(t, "APP_PORT: [unterminated\n")
		_, err := config.Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}
