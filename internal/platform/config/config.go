package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreMongo    = "mongo"
	StoreS3       = "s3"
)

// Auth strategies accepted by AUTH_STRATEGY.
const (
	AuthLocal  = "local"
	AuthTable  = "table"
	AuthRemote = "remote"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level
	CORSOrigins  []string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string
	LoginRateLimit    string

	StoreDriver    string
	StoreKeyPrefix string
	SQLitePath     string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MongoURI       string
	MongoDBName    string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3PathStyle    bool

	AuthStrategy          string
	RemoteAuthURL         string
	RemoteAuthAPIKey      string
	RemoteAuthTokenURL    string
	RemoteAuthClientID    string
	RemoteAuthEmailDomain string

	GoatIDStrategy string
	ReminderCron   string
	Location       *time.Location
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "168h")
	v.SetDefault("JWT_ISSUER", "karangnongko-farm")
	v.SetDefault("SESSION_COOKIE_NAME", "farm_session")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("STORE_DRIVER", StoreSQLite)
	v.SetDefault("STORE_KEY_PREFIX", "farm:")
	v.SetDefault("SQLITE_PATH", "data/farm.db")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB_NAME", "karangnongko")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_PATH_STYLE", false)
	v.SetDefault("AUTH_STRATEGY", AuthLocal)
	v.SetDefault("REMOTE_AUTH_URL", "")
	v.SetDefault("REMOTE_AUTH_API_KEY", "")
	v.SetDefault("REMOTE_AUTH_TOKEN_URL", "")
	v.SetDefault("REMOTE_AUTH_CLIENT_ID", "")
	v.SetDefault("REMOTE_AUTH_EMAIL_DOMAIN", "")
	v.SetDefault("GOAT_ID_STRATEGY", "sequence")
	v.SetDefault("REMINDER_CRON", "0 18 * * *")
	v.SetDefault("TIMEZONE", "Asia/Jakarta")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		CORSOrigins:           splitCSV(v.GetString("CORS_ORIGINS")),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		SessionCookieName:     v.GetString("SESSION_COOKIE_NAME"),
		LoginRateLimit:        v.GetString("LOGIN_RATE_LIMIT"),
		StoreDriver:           strings.ToLower(v.GetString("STORE_DRIVER")),
		StoreKeyPrefix:        v.GetString("STORE_KEY_PREFIX"),
		SQLitePath:            v.GetString("SQLITE_PATH"),
		DatabaseURL:           v.GetString("PGSQL_URL"),
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisDB:               v.GetInt("REDIS_DB"),
		MongoURI:              v.GetString("MONGODB_URI"),
		MongoDBName:           v.GetString("MONGODB_DB_NAME"),
		S3Bucket:              v.GetString("S3_BUCKET"),
		S3Region:              v.GetString("S3_REGION"),
		S3Endpoint:            v.GetString("S3_ENDPOINT"),
		S3PathStyle:           v.GetBool("S3_PATH_STYLE"),
		AuthStrategy:          strings.ToLower(v.GetString("AUTH_STRATEGY")),
		RemoteAuthURL:         v.GetString("REMOTE_AUTH_URL"),
		RemoteAuthAPIKey:      v.GetString("REMOTE_AUTH_API_KEY"),
		RemoteAuthTokenURL:    v.GetString("REMOTE_AUTH_TOKEN_URL"),
		RemoteAuthClientID:    v.GetString("REMOTE_AUTH_CLIENT_ID"),
		RemoteAuthEmailDomain: v.GetString("REMOTE_AUTH_EMAIL_DOMAIN"),
		GoatIDStrategy:        strings.ToLower(v.GetString("GOAT_ID_STRATEGY")),
		ReminderCron:          v.GetString("REMINDER_CRON"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		cfg.LogLevel = slog.LevelInfo
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
	}

	// An empty secret selects the installation key kept in the record store.
	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using the installation key from the record store.")
	}

	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 168 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	tz := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
		log.Printf("Warning: Unknown TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected drivers have what they need.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite, StoreRedis, StoreMongo:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	case StoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORE_DRIVER=%s", StoreS3)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.AuthStrategy {
	case AuthLocal:
	case AuthTable:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required when AUTH_STRATEGY=%s", AuthTable)
		}
	case AuthRemote:
		if c.RemoteAuthURL == "" {
			return fmt.Errorf("REMOTE_AUTH_URL is required when AUTH_STRATEGY=%s", AuthRemote)
		}
		if c.RemoteAuthTokenURL != "" && c.RemoteAuthEmailDomain == "" {
			return fmt.Errorf("REMOTE_AUTH_EMAIL_DOMAIN is required with REMOTE_AUTH_TOKEN_URL")
		}
	default:
		return fmt.Errorf("unknown AUTH_STRATEGY %q", c.AuthStrategy)
	}
	return nil
}

// NeedsPostgres reports whether a pg pool has to be opened.
func (c *Config) NeedsPostgres() bool {
	return c.StoreDriver == StorePostgres || c.AuthStrategy == AuthTable
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
