package config

import (
	"fmt"
	"strconv"
)

// ValidateConfig checks that required settings are present and well formed.
// The OpenRouter key is deliberately not required: the generation client
// degrades to canned meal-plan fallbacks without it.
func ValidateConfig(cfg *Config) error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if cfg.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric: %w", err)
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return fmt.Errorf("database configuration is incomplete")
	}

	if IsProduction() && cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}

	if cfg.CatalogURL == "" {
		return fmt.Errorf("CATALOG_URL is required")
	}

	return nil
}
