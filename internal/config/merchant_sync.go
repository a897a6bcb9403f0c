package config

import (
	"fmt"
	"os"
	"strconv"
)

// MerchantSyncConfig configures the standalone merchant-sync function.
type MerchantSyncConfig struct {
	Server          ServerConfig
	Logger          LoggerConfig
	MerchantID      uint64
	CredentialsFile string
	StoreBaseURL    string
	Currency        string
	TargetCountry   string
	ContentLanguage string
	APIKey          string // optional shared secret expected in X-API-Key
	AllowedOrigin   string
}

// LoadMerchantSync loads the merchant-sync function configuration from
// environment variables.
func LoadMerchantSync() (*MerchantSyncConfig, error) {
	loadDotEnv()

	merchantID, err := parseMerchantID(getEnv("MERCHANT_ID", ""))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg := &MerchantSyncConfig{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8081),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MerchantID:      merchantID,
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		StoreBaseURL:    getEnv("STORE_BASE_URL", "https://rosevegitables.com"),
		Currency:        getEnv("STORE_CURRENCY", "AED"),
		TargetCountry:   getEnv("MERCHANT_TARGET_COUNTRY", "AE"),
		ContentLanguage: getEnv("MERCHANT_CONTENT_LANGUAGE", "en"),
		APIKey:          getEnv("MERCHANT_SYNC_API_KEY", ""),
		AllowedOrigin:   getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the merchant-sync configuration.
func (c *MerchantSyncConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.MerchantID == 0 {
		return fmt.Errorf("merchant ID is required")
	}
	if c.CredentialsFile == "" {
		return fmt.Errorf("service account credentials file is required")
	}
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return fmt.Errorf("service account credentials file: %w", err)
	}
	if c.StoreBaseURL == "" {
		return fmt.Errorf("store base URL is required")
	}
	return validateLogger(c.Logger)
}

func parseMerchantID(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("merchant ID is required")
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid merchant ID: %s", s)
	}
	return id, nil
}
