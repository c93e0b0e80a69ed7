package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"CONFIG_FILE", "HTTP_PORT", "POSTGRES_DRIVER", "H3_RESOLUTION", "MQTT_CLIENT_ID", "RABBITMQ_CONNECTION_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.PostgresDriver)
	assert.Equal(t, 9, cfg.H3Resolution)
	assert.Equal(t, "ims-attendance", cfg.RabbitMQConnName)
	assert.Equal(t, "ims-attendance-mqtt", cfg.MQTTClientID)
	assert.Equal(t, int64(30000), cfg.Spoofing.MaxAgeMs)
	assert.Equal(t, 83.0, cfg.Movement.SuspiciousSpeedMs)
	assert.Equal(t, 278.0, cfg.Movement.ImpossibleSpeedMs)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfigFile(t, `
http_port: "9090"
postgres_driver: pgx
mqtt_client_id: from-file
spoofing:
  max_age_ms: 60000
movement:
  suspicious_speed_ms: 40
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MQTT_CLIENT_ID", "from-env")
	t.Setenv("HTTP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "pgx", cfg.PostgresDriver)
	assert.Equal(t, "from-env", cfg.MQTTClientID)
	assert.Equal(t, int64(60000), cfg.Spoofing.MaxAgeMs)
	// keys absent from the file keep their defaults
	assert.Equal(t, int64(5000), cfg.Spoofing.MaxFutureSkewMs)
	assert.Equal(t, 40.0, cfg.Movement.SuspiciousSpeedMs)
	assert.Equal(t, 278.0, cfg.Movement.ImpossibleSpeedMs)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTGRES_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidH3Resolution(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("POSTGRES_DRIVER", "")

	t.Setenv("H3_RESOLUTION", "abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("H3_RESOLUTION", "16")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_SuspiciousAboveImpossible(t *testing.T) {
	t.Setenv("CONFIG_FILE", writeConfigFile(t, "movement:\n  suspicious_speed_ms: 300\n"))

	_, err := Load()
	assert.Error(t, err)
}
