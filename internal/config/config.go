package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Logger       LoggerConfig
	Model        ModelConfig
	Reference    ReferenceConfig
	Upload       UploadConfig
	Presentation PresentationConfig
	Session      SessionConfig
	Database     DatabaseConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ModelConfig struct {
	Path string
}

type ReferenceConfig struct {
	Path          string
	MergeStrategy string
}

type UploadConfig struct {
	MaxBytes int64
}

type PresentationConfig struct {
	Path string
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// Load reads configuration from the environment. When envFile is non-empty it
// is loaded first; a missing file is ignored.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("MODEL_PATH", "xgboost_model.json")
	v.SetDefault("REFERENCE_PATH", "Comparing_csv.csv")
	v.SetDefault("MERGE_STRATEGY", "positional")
	v.SetDefault("UPLOAD_MAX_BYTES", 32<<20)
	v.SetDefault("PRESENTATION_CONFIG", "")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "permeability")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	// Env
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		ttl = 24 * time.Hour
	}
	lifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Model: ModelConfig{
			Path: v.GetString("MODEL_PATH"),
		},
		Reference: ReferenceConfig{
			Path:          v.GetString("REFERENCE_PATH"),
			MergeStrategy: v.GetString("MERGE_STRATEGY"),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		Presentation: PresentationConfig{
			Path: v.GetString("PRESENTATION_CONFIG"),
		},
		Session: SessionConfig{
			Store: v.GetString("SESSION_STORE"),
			TTL:   ttl,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
	}

	if cfg.Session.Store != SessionStoreMemory && cfg.Session.Store != SessionStorePostgres {
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
	}

	return cfg, nil
}
