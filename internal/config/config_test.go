package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[storage]
driver = "postgres"

[database]
host = "db"
dbname = "darts"

[venue]
timezone = "UTC"
cancellation_cutoff_hours = 1.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "host=db port=5432 user=postgres password= dbname=darts sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 90*time.Minute, cfg.Venue.CancellationCutoff())
	assert.Equal(t, 7, cfg.Venue.BookingHorizonDays)
	assert.Equal(t, "admin_001", cfg.Admin.ID)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown driver", content: "[storage]\ndriver = \"redis\"\n"},
		{name: "bad timezone", content: "[venue]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "zero horizon", content: "[venue]\nbooking_horizon_days = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
