package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_PORT", "APP_URL_FROM_ANYWHERE", "DB_DRIVER", "DB_URL", "SQLITE_PATH",
	"JWT_PUBLIC_KEY_BASE64", "USER_LANGUAGE", "SYSTEM_LANGUAGE", "SUPPORTED_LANGUAGES",
	"PAGE_SIZE", "STATS_REFRESH_SCHEDULE", "SEED_DB_WITH_TEST_DATA", "CORS_HIGH_SECURITY",
}

// clearEnv unsets every key the config reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestNewConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.Equal(t, DBDriverSQLite, cfg.DBDriver)
	require.Equal(t, 5, cfg.PageSize)
	require.Equal(t, "NL", cfg.UserLanguage)
	require.Equal(t, "EN", cfg.SystemLanguage)
	require.Equal(t, []string{"NL", "EN", "DE"}, cfg.Languages())
	require.True(t, cfg.SeedDBWithTestData)
	require.Equal(t, "@every 1m", cfg.StatsRefreshSchedule)
	require.Nil(t, cfg.PublicKey())
}

func TestNewConfigRejectsInvalid(t *testing.T) {
	t.Run("bad stats schedule", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STATS_REFRESH_SCHEDULE", "every minute")
		_, err := NewConfig()
		require.ErrorContains(t, err, "STATS_REFRESH_SCHEDULE")
	})

	t.Run("postgres without url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "postgres")
		_, err := NewConfig()
		require.Error(t, err)
	})
	t.Run("unknown driver", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "oracle")
		_, err := NewConfig()
		require.Error(t, err)
	})
	t.Run("zero page size", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PAGE_SIZE", "0")
		_, err := NewConfig()
		require.Error(t, err)
	})
}

func TestPublicKeyFromEnv(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	clearEnv(t)
	t.Setenv("JWT_PUBLIC_KEY_BASE64", encoded)
	t.Setenv("SUPPORTED_LANGUAGES", "fr, en")

	cfg, err := NewConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.PublicKey())
	require.True(t, key.PublicKey.Equal(cfg.PublicKey()))
	require.Equal(t, []string{"NL", "EN", "FR"}, cfg.Languages())

	var p PublicKey
	require.Error(t, p.UnmarshalEnvironmentValue("!!not base64!!"))
}
