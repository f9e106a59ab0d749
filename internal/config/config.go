package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Payment  PaymentConfig
	OAuth    OAuthConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode + "&prepare_threshold=0"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig holds blob storage configuration
type StorageConfig struct {
	RootDir string
	// ReceiptSizeThreshold is the byte size above which uploaded
	// receipt images are downscaled and re-encoded before storage.
	ReceiptSizeThreshold int64
	MaxUploadSize        int64
}

// ReceivingAccount is the mobile-money account clients transfer to
type ReceivingAccount struct {
	Provider      string
	AccountNumber string
	AccountName   string
}

// PaymentConfig holds the receiving accounts shown in the payment wizard
type PaymentConfig struct {
	OrangeMoney  ReceivingAccount
	MTNMomo      ReceivingAccount
	ExpressUnion ReceivingAccount
}

// OAuthConfig holds Google OAuth credentials
type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// SecurityConfig holds security encryption keys
type SecurityConfig struct {
	SessionEncryptionKey string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			AllowedOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "taxportal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Storage: StorageConfig{
			RootDir:              getEnv("STORAGE_ROOT", "./data/storage"),
			ReceiptSizeThreshold: getEnvAsInt64("RECEIPT_SIZE_THRESHOLD", 1<<20), // 1 MiB
			MaxUploadSize:        getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20),
		},
		Payment: PaymentConfig{
			OrangeMoney: ReceivingAccount{
				Provider:      "orange_money",
				AccountNumber: getEnv("ORANGE_MONEY_NUMBER", "699000001"),
				AccountName:   getEnv("ORANGE_MONEY_NAME", "TaxPortal SARL"),
			},
			MTNMomo: ReceivingAccount{
				Provider:      "mtn_momo",
				AccountNumber: getEnv("MTN_MOMO_NUMBER", "677000001"),
				AccountName:   getEnv("MTN_MOMO_NAME", "TaxPortal SARL"),
			},
			ExpressUnion: ReceivingAccount{
				Provider:      "express_union",
				AccountNumber: getEnv("EXPRESS_UNION_NUMBER", "690000001"),
				AccountName:   getEnv("EXPRESS_UNION_NAME", "TaxPortal SARL"),
			},
		},
		OAuth: OAuthConfig{
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		},
		Security: SecurityConfig{
			SessionEncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
