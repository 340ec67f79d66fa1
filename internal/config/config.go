package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Auth     AuthConfig
	JWT      JWTConfig
	Firebase FirebaseConfig
	S3       S3Config
	OTEL     OTELConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	MaxUploadSizeMB int64
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
	// Transactions requires a replica set; standalone deployments run
	// units of work sequentially instead.
	Transactions bool
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
}

// CacheConfig holds cache behaviour configuration
type CacheConfig struct {
	TTL             time.Duration
	SlowOpThreshold time.Duration
}

// AuthConfig selects the token verification provider ("jwt" or "firebase")
type AuthConfig struct {
	Provider string
}

// JWTConfig holds HMAC JWT verification configuration
type JWTConfig struct {
	Secret string
}

// FirebaseConfig holds Firebase Admin SDK configuration
type FirebaseConfig struct {
	ProjectID   string
	PrivateKey  string // Base64 encoded
	ClientEmail string
}

// S3Config holds media storage configuration for any S3-compatible store
type S3Config struct {
	Enabled   bool
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// OTELConfig holds OpenTelemetry export configuration
type OTELConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	InstanceID     string
	Token          string
}

// Load reads configuration from environment variables
// It attempts to load from .env file first, then falls back to system env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			MaxUploadSizeMB: getEnvAsInt64("MAX_UPLOAD_SIZE_MB", 10),
		},
		MongoDB: MongoDBConfig{
			URI:          getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:     getEnv("MONGODB_DATABASE", "planforge"),
			Transactions: getEnvAsBool("MONGODB_TRANSACTIONS", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Cache: CacheConfig{
			TTL:             time.Duration(getEnvAsInt64("CACHE_TTL_SECONDS", 3600)) * time.Second,
			SlowOpThreshold: time.Duration(getEnvAsInt64("SLOW_OP_THRESHOLD_MS", 500)) * time.Millisecond,
		},
		Auth: AuthConfig{
			Provider: getEnv("AUTH_PROVIDER", "jwt"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Firebase: FirebaseConfig{
			ProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
			PrivateKey:  getEnv("FIREBASE_PRIVATE_KEY", ""),
			ClientEmail: getEnv("FIREBASE_CLIENT_EMAIL", ""),
		},
		S3: S3Config{
			Enabled:   getEnvAsBool("S3_ENABLED", false),
			Endpoint:  getEnv("S3_ENDPOINT", "http://localhost:8333"),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Bucket:    getEnv("S3_BUCKET", "planforge-media"),
			AccessKey: getEnv("S3_ACCESS_KEY", "any"),
			SecretKey: getEnv("S3_SECRET_KEY", "any"),
		},
		OTEL: OTELConfig{
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "planforge-api"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
			Environment:    getEnv("OTEL_ENVIRONMENT", "development"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			InstanceID:     getEnv("OTEL_INSTANCE_ID", ""),
			Token:          getEnv("OTEL_TOKEN", ""),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present
func (c *Config) Validate() error {
	switch c.Auth.Provider {
	case "jwt":
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=jwt")
		}
	case "firebase":
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required when AUTH_PROVIDER=firebase")
		}
		if c.Firebase.PrivateKey == "" {
			return fmt.Errorf("FIREBASE_PRIVATE_KEY is required when AUTH_PROVIDER=firebase")
		}
		if c.Firebase.ClientEmail == "" {
			return fmt.Errorf("FIREBASE_CLIENT_EMAIL is required when AUTH_PROVIDER=firebase")
		}
	default:
		return fmt.Errorf("AUTH_PROVIDER must be 'jwt' or 'firebase', got %q", c.Auth.Provider)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as int64 or returns a default value
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
