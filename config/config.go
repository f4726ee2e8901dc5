package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from defaults, an
// optional .env file and environment variables.
//
//	SERVER_PORT=8080
//	SERVER_RATE_LIMIT=60
//	SERVER_MAX_BODY_BYTES=5242880
//	SERVER_REQUEST_TIMEOUT=10s
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=botjournal
//	POSTGRES_SSLMODE=disable
//	JOURNAL_INPUT_DIR=./data/logs
//	JOURNAL_INPUT_GLOB=**/*.txt
//	JOURNAL_PARALLEL=0
//	JOURNAL_WATCH_DEBOUNCE=500ms
type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Journal  JournalConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	RateLimit      int   // requests per client IP per minute, 0 disables
	MaxBodyBytes   int64 // cap on uploaded log size
	RequestTimeout time.Duration
}

// PostgresConfig defines connection details for PostgreSQL. URL is the DSN
// built from the other fields.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// JournalConfig controls file ingestion in ingest and watch modes.
type JournalConfig struct {
	InputDir      string
	InputGlob     string
	Parallel      int
	WatchDebounce time.Duration
}

// AppConfig is populated once by LoadConfig and read everywhere else.
var AppConfig Config

// LoadConfig fills AppConfig. Precedence, lowest first: defaults, .env,
// environment. Missing required values terminate the process.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_RATE_LIMIT", 60)
	viper.SetDefault("SERVER_MAX_BODY_BYTES", 5<<20)
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "botjournal")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("JOURNAL_INPUT_DIR", "./data/logs")
	viper.SetDefault("JOURNAL_INPUT_GLOB", "**/*.txt")
	viper.SetDefault("JOURNAL_PARALLEL", 0)
	viper.SetDefault("JOURNAL_WATCH_DEBOUNCE", "500ms")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			RateLimit:      viper.GetInt("SERVER_RATE_LIMIT"),
			MaxBodyBytes:   viper.GetInt64("SERVER_MAX_BODY_BYTES"),
			RequestTimeout: viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Journal: JournalConfig{
			InputDir:      viper.GetString("JOURNAL_INPUT_DIR"),
			InputGlob:     viper.GetString("JOURNAL_INPUT_GLOB"),
			Parallel:      viper.GetInt("JOURNAL_PARALLEL"),
			WatchDebounce: viper.GetDuration("JOURNAL_WATCH_DEBOUNCE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// validateConfig terminates the process when required values are missing.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}

// DSN renders the connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode,
	)
}

// missingFields lists the environment variables whose values are required
// but empty in cfg.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if cfg.Journal.InputGlob == "" {
		missing = append(missing, "JOURNAL_INPUT_GLOB")
	}
	return missing
}
