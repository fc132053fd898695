package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	StoreSQLite StoreDriver = "sqlite"
	StoreFile   StoreDriver = "file"
)

type Config struct {
	Port            int
	DatabasePath    string
	MigrationsDir   string
	StoreDriver     StoreDriver
	DataFile        string
	SessionLifetime time.Duration
	LogLevel        slog.Level
	AllowedOrigins  []string
	EntryFeeCents   int64

	DiscordKey         string
	DiscordSecret      string
	DiscordCallbackURL string
	GoogleKey          string
	GoogleSecret       string
	GoogleCallbackURL  string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function so tests do not
// have to touch the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	driver := StoreDriver(get("STORE_DRIVER", string(StoreSQLite)))
	if driver != StoreSQLite && driver != StoreFile {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreSQLite, StoreFile, driver)
	}

	lifetime, err := time.ParseDuration(get("SESSION_LIFETIME", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_LIFETIME environment variable: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	fee, err := strconv.ParseInt(get("DEFAULT_ENTRY_FEE_CENTS", "2000"), 10, 64)
	if err != nil || fee < 0 {
		return nil, fmt.Errorf("invalid DEFAULT_ENTRY_FEE_CENTS environment variable: %q", getenv("DEFAULT_ENTRY_FEE_CENTS"))
	}

	var origins []string
	for _, o := range strings.Split(get("ALLOWED_ORIGINS", "http://localhost:8080"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:            port,
		DatabasePath:    get("DATABASE_PATH", "beach_volley.db"),
		MigrationsDir:   get("MIGRATIONS_DIR", "migrations"),
		StoreDriver:     driver,
		DataFile:        get("DATA_FILE", "beach_volley_data.json"),
		SessionLifetime: lifetime,
		LogLevel:        level,
		AllowedOrigins:  origins,
		EntryFeeCents:   fee,

		DiscordKey:         getenv("DISCORD_KEY"),
		DiscordSecret:      getenv("DISCORD_SECRET"),
		DiscordCallbackURL: getenv("DISCORD_CALLBACK_URL"),
		GoogleKey:          getenv("GOOGLE_KEY"),
		GoogleSecret:       getenv("GOOGLE_SECRET"),
		GoogleCallbackURL:  getenv("GOOGLE_CALLBACK_URL"),
	}, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
