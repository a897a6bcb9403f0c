package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Media     MediaConfig
	Merchant  MerchantConfig
	Store     StoreConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host          string
	Port          int
	AllowedOrigin string
}

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Driver          string // "postgres" or "mongo"
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
	AutoMigrate     bool
	MongoURI        string
	MongoDatabase   string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Supported admin sign-in providers.
const (
	AuthProviderLocal    = "local"
	AuthProviderIdentity = "identity"
)

// AuthConfig holds admin authentication configuration.
type AuthConfig struct {
	Provider          string // "local" or "identity"
	AdminEmail        string
	AdminPasswordHash string
	IdentityAPIKey    string
	SessionTTL        time.Duration
}

// RedisConfig holds Redis configuration for carts and sessions. An empty URL
// keeps both in process memory.
type RedisConfig struct {
	URL     string
	CartTTL time.Duration
}

// Supported media providers.
const (
	MediaCloudinary = "cloudinary"
	MediaS3         = "s3"
)

// MediaConfig holds image hosting configuration.
type MediaConfig struct {
	Provider     string // "cloudinary" or "s3"
	Fallback     string // optional secondary provider
	MaxSizeBytes int64
	Cloudinary   CloudinaryConfig
	S3           S3Config
}

// CloudinaryConfig holds Cloudinary upload configuration.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	Folder       string
}

// S3Config holds AWS S3 configuration for product images.
type S3Config struct {
	Bucket        string
	Region        string
	Prefix        string // Key prefix within bucket (e.g., "images/")
	PublicBaseURL string
}

// MerchantConfig holds the storefront side of the merchant catalogue sync.
type MerchantConfig struct {
	Enabled bool
	SyncURL string
	APIKey  string
	Timeout time.Duration
}

// StoreConfig holds storefront details used in checkout messages.
type StoreConfig struct {
	WhatsAppPhone string
}

// TelemetryConfig holds tracing configuration.
type TelemetryConfig struct {
	Exporter    string // "", "stdout" or "otlp"
	Endpoint    string
	ServiceName string
}

// Load loads configuration from environment variables, after reading an
// optional .env file.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			Port:          getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),
		},
		Database: loadDatabaseConfig(),
		Logger:   loadLoggerConfig(),
		Auth: AuthConfig{
			Provider:          getEnv("AUTH_PROVIDER", AuthProviderLocal),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			IdentityAPIKey:    getEnv("IDENTITY_API_KEY", ""),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		},
		Redis: RedisConfig{
			URL:     getEnv("REDIS_URL", ""),
			CartTTL: getEnvAsDuration("CART_TTL", 30*24*time.Hour),
		},
		Media: MediaConfig{
			Provider:     getEnv("MEDIA_PROVIDER", MediaCloudinary),
			Fallback:     getEnv("MEDIA_FALLBACK", ""),
			MaxSizeBytes: int64(getEnvAsInt("MEDIA_MAX_SIZE_BYTES", 10<<20)),
			Cloudinary: CloudinaryConfig{
				CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
				APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
				APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
				UploadPreset: getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
				Folder:       getEnv("CLOUDINARY_FOLDER", ""),
			},
			S3: S3Config{
				Bucket:        getEnv("S3_BUCKET", ""),
				Region:        getEnv("S3_REGION", "us-east-1"),
				Prefix:        getEnv("S3_PREFIX", "images/"),
				PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),
			},
		},
		Merchant: MerchantConfig{
			Enabled: getEnvAsBool("MERCHANT_SYNC_ENABLED", false),
			SyncURL: getEnv("MERCHANT_SYNC_URL", ""),
			APIKey:  getEnv("MERCHANT_SYNC_API_KEY", ""),
			Timeout: getEnvAsDuration("MERCHANT_SYNC_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			WhatsAppPhone: getEnv("WHATSAPP_PHONE", "+971547453650"),
		},
		Telemetry: TelemetryConfig{
			Exporter:    getEnv("OTEL_EXPORTER", ""),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "produce-kart-api"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", DriverPostgres),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", "producekart"),
		MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
		MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
		MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		AutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "producekart"),
	}
}

func loadLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if err := c.Database.Validate(); err != nil {
		return err
	}

	switch c.Auth.Provider {
	case AuthProviderLocal:
		if c.Auth.AdminEmail == "" {
			return fmt.Errorf("admin email is required for local auth")
		}
		if c.Auth.AdminPasswordHash == "" {
			return fmt.Errorf("admin password hash is required for local auth")
		}
	case AuthProviderIdentity:
		if c.Auth.IdentityAPIKey == "" {
			return fmt.Errorf("identity API key is required for identity auth")
		}
	default:
		return fmt.Errorf("invalid auth provider: %s (must be local or identity)", c.Auth.Provider)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if err := validateLogger(c.Logger); err != nil {
		return err
	}

	if err := c.Media.Validate(); err != nil {
		return err
	}

	if c.Merchant.Enabled && c.Merchant.SyncURL == "" {
		return fmt.Errorf("merchant sync URL is required when merchant sync is enabled")
	}

	if c.Store.WhatsAppPhone == "" {
		return fmt.Errorf("WhatsApp phone is required")
	}

	switch c.Telemetry.Exporter {
	case "", "stdout":
	case "otlp":
		if c.Telemetry.Endpoint == "" {
			return fmt.Errorf("OTLP endpoint is required when the otlp exporter is selected")
		}
	default:
		return fmt.Errorf("invalid telemetry exporter: %s (must be stdout or otlp)", c.Telemetry.Exporter)
	}

	return nil
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Port)
		}
		if c.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}
		if c.MinConnections > c.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("mongo URI is required")
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("mongo database is required")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or mongo)", c.Driver)
	}
	return nil
}

// Validate validates the media configuration.
func (c *MediaConfig) Validate() error {
	if c.MaxSizeBytes < 1 {
		return fmt.Errorf("media max size must be positive")
	}
	if err := c.validateProvider(c.Provider); err != nil {
		return err
	}
	if c.Fallback != "" {
		if c.Fallback == c.Provider {
			return fmt.Errorf("media fallback must differ from the primary provider")
		}
		if err := c.validateProvider(c.Fallback); err != nil {
			return err
		}
	}
	return nil
}

func (c *MediaConfig) validateProvider(name string) error {
	switch name {
	case MediaCloudinary:
		if c.Cloudinary.CloudName == "" {
			return fmt.Errorf("cloudinary cloud name is required")
		}
		if c.Cloudinary.APISecret == "" && c.Cloudinary.UploadPreset == "" {
			return fmt.Errorf("cloudinary API secret or upload preset is required")
		}
	case MediaS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 media is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 media is enabled")
		}
	default:
		return fmt.Errorf("invalid media provider: %s (must be cloudinary or s3)", name)
	}
	return nil
}

func validateLogger(c LoggerConfig) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}

	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Format)
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadDotEnv reads ENV_FILE (default ".env") if present. Variables already
// set in the environment win.
func loadDotEnv() {
	envFile := getEnv("ENV_FILE", ".env")
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
