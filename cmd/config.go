package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	DBAutoMigrate bool
	LogMode       string

	LoaderBatchSize int

	DeliveryCompletionSchedule string
	DeliveryCompletionAfter    time.Duration
}

// LoadConfig reads the configuration from the environment. Values from
// envFile are loaded first when the file exists; variables already set in the
// environment win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		HTTPPort:                   getEnv("HTTP_PORT", "8082"),
		DBDriver:                   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:                     getEnv("DB_HOST", "localhost"),
		DBPort:                     getEnv("DB_PORT", "5432"),
		DBUser:                     getEnv("DB_USER", "postgres"),
		DBPassword:                 getEnv("DB_PASSWORD", ""),
		DBName:                     getEnv("DB_NAME", "ordering"),
		DBSslMode:                  getEnv("DB_SSLMODE", "disable"),
		SQLitePath:                 getEnv("SQLITE_PATH", "ordering.db"),
		LogMode:                    getEnv("LOG_MODE", "development"),
		DeliveryCompletionSchedule: getEnv("DELIVERY_COMPLETION_SCHEDULE", ""),
	}

	var err error
	if cfg.DBAutoMigrate, err = getBool("DB_AUTO_MIGRATE", true); err != nil {
		return Config{}, err
	}
	if cfg.LoaderBatchSize, err = getInt("LOADER_BATCH_SIZE", 100); err != nil {
		return Config{}, err
	}
	if cfg.DeliveryCompletionAfter, err = getDuration("DELIVERY_COMPLETION_AFTER", 10*time.Minute); err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("HTTP_PORT is required")
	}
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.LoaderBatchSize <= 0 {
		return fmt.Errorf("LOADER_BATCH_SIZE must be positive, got %d", c.LoaderBatchSize)
	}
	return nil
}

// PostgresDSN builds a libpq style connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
