package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the loaded configuration and reports every problem found
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.Server.Port == "" {
		errs = append(errs, ValidationError{"server.port", "is required"})
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.URL == "" && (cfg.Database.Host == "" || cfg.Database.Name == "") {
			errs = append(errs, ValidationError{"database", "DATABASE_URL or DB_HOST and DB_NAME are required"})
		}
	case "sqlite":
		if cfg.Database.Path == "" {
			errs = append(errs, ValidationError{"database.path", "is required for sqlite"})
		}
	default:
		errs = append(errs, ValidationError{"database.driver", fmt.Sprintf("unsupported driver %q", cfg.Database.Driver)})
	}

	if cfg.Redis.Enabled && cfg.Redis.URL == "" {
		errs = append(errs, ValidationError{"redis.url", "is required when redis is enabled"})
	}

	if cfg.Storage.Enabled && cfg.Storage.Bucket == "" {
		errs = append(errs, ValidationError{"storage.bucket", "is required when storage is enabled"})
	}

	if cfg.Matching.MinMatchScore <= 0 || cfg.Matching.MinMatchScore > 100 {
		errs = append(errs, ValidationError{"matching.min_match_score", "must be greater than 0 and at most 100"})
	}
	if cfg.Matching.Limit <= 0 {
		errs = append(errs, ValidationError{"matching.limit", "must be positive"})
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Window <= 0) {
		errs = append(errs, ValidationError{"rate_limit", "requests and window must be positive"})
	}

	if IsProduction() && cfg.LLM.APIKey == "" {
		errs = append(errs, ValidationError{"llm.api_key", "is required in production"})
	}

	return errors.Join(errs...)
}
