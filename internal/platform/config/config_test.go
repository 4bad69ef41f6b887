package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("AUTH_STRATEGY", "")
	t.Setenv("JWT_EXPIRY_DURATION", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, AuthLocal, cfg.AuthStrategy)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiryDuration)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.NotNil(t, cfg.Location)
	assert.False(t, cfg.NeedsPostgres())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("GOAT_ID_STRATEGY", "LENGTH")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.StoreDriver)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "length", cfg.GoatIDStrategy)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory local", Config{StoreDriver: StoreMemory, AuthStrategy: AuthLocal}, false},
		{"unknown driver", Config{StoreDriver: "floppy", AuthStrategy: AuthLocal}, true},
		{"postgres without url", Config{StoreDriver: StorePostgres, AuthStrategy: AuthLocal}, true},
		{"s3 without bucket", Config{StoreDriver: StoreS3, AuthStrategy: AuthLocal}, true},
		{"table without url", Config{StoreDriver: StoreSQLite, AuthStrategy: AuthTable}, true},
		{"table with url", Config{StoreDriver: StoreSQLite, AuthStrategy: AuthTable, DatabaseURL: "postgres://x"}, false},
		{"remote without url", Config{StoreDriver: StoreSQLite, AuthStrategy: AuthRemote}, true},
		{"remote token without domain", Config{StoreDriver: StoreSQLite, AuthStrategy: AuthRemote, RemoteAuthURL: "http://rows", RemoteAuthTokenURL: "http://rows/token"}, true},
		{"unknown strategy", Config{StoreDriver: StoreSQLite, AuthStrategy: "ldap"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.True(t, (&Config{StoreDriver: StorePostgres}).NeedsPostgres())
	assert.True(t, (&Config{StoreDriver: StoreMemory, AuthStrategy: AuthTable}).NeedsPostgres())
}
