package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileThenEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
http_port = 9090

[database]
host = "db"
password = "from-file"

[hotel]
timezone = "UTC"
deposit_rate = "0.5"
early_check_in_service_id = 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("HOTEL_DATABASE_PASSWORD", "from-env")
	t.Setenv("HOTEL_SERVER_HTTP_PORT", "9191")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 5432, cfg.Database.Port, "defaults survive partial files")

	settings, err := cfg.Hotel.Settings()
	require.NoError(t, err)
	assert.Equal(t, "0.5", settings.DepositRate.String())
	require.NotNil(t, settings.EarlyCheckInServiceID)
	assert.Equal(t, int64(7), *settings.EarlyCheckInServiceID)
	assert.Equal(t, "14:00", settings.StandardCheckIn.String())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestHotelSettings_Invalid(t *testing.T) {
	h := Default().Hotel
	h.DepositRate = "1.5"
	_, err := h.Settings()
	assert.Error(t, err)

	h = Default().Hotel
	h.StandardCheckIn = "25:99"
	_, err = h.Settings()
	assert.Error(t, err)

	h = Default().Hotel
	h.Timezone = "Mars/Olympus"
	_, err = h.Settings()
	assert.Error(t, err)
}
