package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// DBConfig holds database configuration
type DBConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string. DATABASE_URL wins over the individual parts.
func (c *DBConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	FrontendURL string
	CORSOrigins []string
}

// IsProduction reports whether the service runs with APP_ENV=production
func (s ServerConfig) IsProduction() bool {
	return s.Env == "production"
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// RedisConfig holds the token revocation store settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig holds object storage settings for media uploads
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	UploadTTL time.Duration
}

// MailConfig holds outbound email settings
type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

// GoogleConfig holds the OAuth client used for the Drive integration
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// KeepaliveConfig holds the self-ping job settings
type KeepaliveConfig struct {
	URL      string
	Schedule string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	DB          DBConfig
	Server      ServerConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Mail        MailConfig
	Google      GoogleConfig
	Keepalive   KeepaliveConfig
}

var defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load loads configuration from .env file and environment variables.
// Callers that issue tokens must run Validate.
func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")

	config := &Config{
		ServiceName: getEnv("SERVICE_NAME", "ugc-service"),
		DB: DBConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "ugc"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", getEnv("SERVER_PORT", "3000")),
			Env:         getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
			FrontendURL: frontendURL,
			CORSOrigins: buildOrigins(frontendURL, getEnv("CORS_ORIGINS", "")),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SECRET", getEnv("JWT_SIGNING_KEY", "")),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24*7),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "ugc"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "ugc-media"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			UploadTTL: getEnvAsDuration("MINIO_UPLOAD_TTL", 15*time.Minute),
		},
		Mail: MailConfig{
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "campaigns@ugc-impact.com"),
			FromName:       getEnv("MAIL_FROM_NAME", "UGC Impact"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", frontendURL+"/settings/drive/callback"),
		},
		Keepalive: KeepaliveConfig{
			URL:      getEnv("KEEPALIVE_URL", ""),
			Schedule: getEnv("KEEPALIVE_SCHEDULE", "@every 15s"),
		},
	}

	return config, nil
}

// Validate checks the settings the HTTP service cannot start without
func (c *Config) Validate() error {
	if c.JWT.SigningKey == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpirationHours <= 0 {
		return errors.New("JWT_EXPIRATION_HOURS must be positive")
	}
	return nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_host", c.DB.Host),
		zap.Bool("db_url_set", c.DB.URL != ""),
		zap.String("server_port", c.Server.Port),
		zap.Strings("cors_origins", c.Server.CORSOrigins),
		zap.Bool("redis_enabled", c.Redis.Addr != ""),
		zap.Bool("minio_enabled", c.Storage.Endpoint != ""),
		zap.Bool("sendgrid_enabled", c.Mail.SendGridAPIKey != ""),
	}
}

func buildOrigins(frontendURL, extra string) []string {
	seen := make(map[string]bool)
	var origins []string
	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			return
		}
		seen[o] = true
		origins = append(origins, o)
	}
	add(frontendURL)
	for _, o := range strings.Split(extra, ",") {
		add(o)
	}
	for _, o := range defaultOrigins {
		add(o)
	}
	return origins
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as booleans
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
