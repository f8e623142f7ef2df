package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Export ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for export staging.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ExportConfig holds staged-export lifecycle settings.
type ExportConfig struct {
	TTL                 time.Duration `mapstructure:"ttl"`
	CleanupIntervalSecs int           `mapstructure:"cleanup_interval_secs"`
	CleanupBatchSize    int           `mapstructure:"cleanup_batch_size"`
}

// Load reads configuration from environment variables with the FRAUDLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FRAUDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "fraudlens")
	v.SetDefault("db.password", "fraudlens_secret")
	v.SetDefault("db.name", "fraudlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "fraudlens-exports")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:3001,http://127.0.0.1:3001")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@fraudlens.io")
	v.SetDefault("email.from_name", "FraudLens")

	// Export defaults
	v.SetDefault("export.ttl", "1h")
	v.SetDefault("export.cleanup_interval_secs", 60)
	v.SetDefault("export.cleanup_batch_size", 50)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "FRAUDLENS_SERVER_PORT",
		"server.read_timeout":          "FRAUDLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "FRAUDLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":           "FRAUDLENS_SERVER_ENVIRONMENT",
		"db.host":                      "FRAUDLENS_DB_HOST",
		"db.port":                      "FRAUDLENS_DB_PORT",
		"db.user":                      "FRAUDLENS_DB_USER",
		"db.password":                  "FRAUDLENS_DB_PASSWORD",
		"db.name":                      "FRAUDLENS_DB_NAME",
		"db.sslmode":                   "FRAUDLENS_DB_SSLMODE",
		"db.max_open":                  "FRAUDLENS_DB_MAX_OPEN",
		"db.max_idle":                  "FRAUDLENS_DB_MAX_IDLE",
		"s3.region":                    "FRAUDLENS_S3_REGION",
		"s3.bucket":                    "FRAUDLENS_S3_BUCKET",
		"s3.endpoint":                  "FRAUDLENS_S3_ENDPOINT",
		"s3.access_key":                "FRAUDLENS_S3_ACCESS_KEY",
		"s3.secret_key":                "FRAUDLENS_S3_SECRET_KEY",
		"log.level":                    "FRAUDLENS_LOG_LEVEL",
		"log.format":                   "FRAUDLENS_LOG_FORMAT",
		"cors.allowed_origins":         "FRAUDLENS_CORS_ALLOWED_ORIGINS",
		"email.provider":               "FRAUDLENS_EMAIL_PROVIDER",
		"email.region":                 "FRAUDLENS_EMAIL_REGION",
		"email.from_address":           "FRAUDLENS_EMAIL_FROM_ADDRESS",
		"email.from_name":              "FRAUDLENS_EMAIL_FROM_NAME",
		"export.ttl":                   "FRAUDLENS_EXPORT_TTL",
		"export.cleanup_interval_secs": "FRAUDLENS_EXPORT_CLEANUP_INTERVAL_SECS",
		"export.cleanup_batch_size":    "FRAUDLENS_EXPORT_CLEANUP_BATCH_SIZE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FRAUDLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FRAUDLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Export = ExportConfig{
		TTL:                 v.GetDuration("export.ttl"),
		CleanupIntervalSecs: v.GetInt("export.cleanup_interval_secs"),
		CleanupBatchSize:    v.GetInt("export.cleanup_batch_size"),
	}

	return cfg, nil
}
