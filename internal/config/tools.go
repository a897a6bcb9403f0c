package config

import "fmt"

// ToolsConfig is the subset of configuration used by the storectl
// maintenance commands.
type ToolsConfig struct {
	Database DatabaseConfig
	Logger   LoggerConfig
	Redis    RedisConfig
	S3       S3Config
}

// LoadTools loads the maintenance configuration. Unlike Load it does not
// require auth, media or storefront settings.
func LoadTools() (*ToolsConfig, error) {
	loadDotEnv()

	cfg := &ToolsConfig{
		Database: loadDatabaseConfig(),
		Logger:   loadLoggerConfig(),
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		S3: S3Config{
			Bucket: getEnv("SEED_S3_BUCKET", ""),
			Region: getEnv("S3_REGION", "us-east-1"),
			Prefix: getEnv("SEED_S3_PREFIX", "seed/"),
		},
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := validateLogger(cfg.Logger); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
