package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	BodyLimitMB    int
	AllowedOrigins string
	BcryptCost     int
	Database       DatabaseConfig
	JWT            JWTConfig
	Loan           LoanConfig
	Redis          RedisConfig
	AMQP           AMQPConfig
	Seed           SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds bearer token configuration
type JWTConfig struct {
	Secret       string
	ExpiresHours int
}

// LoanConfig holds loan review configuration
type LoanConfig struct {
	PermissiveTransitions bool
	ReviewReminderCron    string
	ReviewSLAHours        int
}

// RedisConfig holds the telemetry stream connection. Empty Addr disables it.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	TelemetryStream string
	TelemetryMaxLen int64
}

// AMQPConfig holds the loan event broker connection. Empty URL disables it.
type AMQPConfig struct {
	URL   string
	Queue string
}

// SeedConfig holds the dev-mode distributor account
type SeedConfig struct {
	DistributorName     string
	DistributorEmail    string
	DistributorPassword string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using environment variables")
	}

	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	jwtConfig := loadJWTConfig(appMode)
	if jwtConfig.Secret == "" {
		return nil, fmt.Errorf("%sJWT_SECRET is required", modePrefix(appMode))
	}

	config := &Config{
		AppMode:        appMode,
		Port:           getEnv("PORT", "8000"),
		BodyLimitMB:    getEnvInt("BODY_LIMIT_MB", 12),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		BcryptCost:     getEnvInt("BCRYPT_COST", 10),
		Database:       database,
		JWT:            jwtConfig,
		Loan: LoanConfig{
			PermissiveTransitions: getEnvBool("LOAN_PERMISSIVE_TRANSITIONS", false),
			ReviewReminderCron:    getEnv("REVIEW_REMINDER_CRON", "30 8 * * *"),
			ReviewSLAHours:        getEnvInt("REVIEW_SLA_HOURS", 48),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", ""),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			TelemetryStream: getEnv("TELEMETRY_STREAM", "telemetry:events"),
			TelemetryMaxLen: int64(getEnvInt("TELEMETRY_MAXLEN", 100000)),
		},
		AMQP: AMQPConfig{
			URL:   getEnv("AMQP_URL", ""),
			Queue: getEnv("AMQP_QUEUE", "loan.events"),
		},
		Seed: SeedConfig{
			DistributorName:     getEnv("SEED_DISTRIBUTOR_NAME", "Default Distributor"),
			DistributorEmail:    getEnv("SEED_DISTRIBUTOR_EMAIL", "distributor@edugate.local"),
			DistributorPassword: getEnv("SEED_DISTRIBUTOR_PASSWORD", ""),
		},
	}

	return config, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(strings.TrimSpace(getEnv("DB_DRIVER", "mysql")))
	defaultPort := "3306"
	defaultUser := "root"
	switch driver {
	case "mysql":
	case "postgres":
		defaultPort = "5432"
		defaultUser = "postgres"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'postgres')", driver)
	}

	return DatabaseConfig{
		Driver:      driver,
		Host:        getEnv(prefix+"DB_HOST", "localhost"),
		Port:        getEnv(prefix+"DB_PORT", defaultPort),
		User:        getEnv(prefix+"DB_USER", defaultUser),
		Password:    getEnv(prefix+"DB_PASS", ""),
		DBName:      getEnv(prefix+"DB_NAME", "edugate"),
		SSLMode:     getEnv(prefix+"DB_SSLMODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
	}, nil
}

// loadJWTConfig loads JWT config based on mode. Only dev gets a fallback secret.
func loadJWTConfig(mode string) JWTConfig {
	defaultSecret := ""
	if mode == "dev" {
		defaultSecret = "dev_secret"
	}

	return JWTConfig{
		Secret:       getEnv(modePrefix(mode)+"JWT_SECRET", defaultSecret),
		ExpiresHours: getEnvInt("TOKEN_EXPIRES_HOURS", 8),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// TokenTTL returns how long an issued token stays valid
func (c *Config) TokenTTL() time.Duration {
	hours := c.JWT.ExpiresHours
	if hours <= 0 {
		hours = 8
	}
	return time.Duration(hours) * time.Hour
}

// ReviewSLA returns how long an application may wait for a decision
func (c *Config) ReviewSLA() time.Duration {
	return time.Duration(c.Loan.ReviewSLAHours) * time.Hour
}

// BodyLimit returns the request body limit in bytes
func (c *Config) BodyLimit() int {
	mb := c.BodyLimitMB
	if mb <= 0 {
		mb = 12
	}
	return mb * 1024 * 1024
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return c.AllowedOrigins
}
