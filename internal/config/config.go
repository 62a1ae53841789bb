package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend identifiers.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config aggregates runtime configuration for the roster console.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	SQLite   SQLiteConfig
	AutoSave AutoSaveConfig
	Logger   LoggerConfig
}

// AppConfig controls application level behavior.
type AppConfig struct {
	Name string
	Env  string
}

// StorageConfig selects the persistence backend and the snapshot slot.
type StorageConfig struct {
	Backend string
	Key     string
	Dir     string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// SQLiteConfig locates the sqlite database file.
type SQLiteConfig struct {
	Path string
}

// AutoSaveConfig controls the recurring snapshot timer.
type AutoSaveConfig struct {
	Enabled         bool
	IntervalSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "user-console"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", BackendFile),
			Key:     getEnv("STORAGE_KEY", "scheduling_users"),
			Dir:     getEnv("STORAGE_DIR", "data"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/users.db"),
		},
		AutoSave: AutoSaveConfig{
			Enabled:         getEnvAsBool("AUTOSAVE_ENABLED", true),
			IntervalSeconds: getEnvAsInt("AUTOSAVE_INTERVAL_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendRedis, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

// Interval returns the autosave period as a duration.
func (a AutoSaveConfig) Interval() time.Duration {
	if a.IntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(a.IntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
