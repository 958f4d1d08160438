package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
		// SimulatedLatency delays every API response, mimicking a remote backend
		SimulatedLatency string `yaml:"simulated_latency" env:"SERVER_SIMULATED_LATENCY"`
	} `yaml:"server"`

	Store struct {
		Seed             bool   `yaml:"seed" env:"STORE_SEED"`
		SectionCapacity  int    `yaml:"section_capacity" env:"STORE_SECTION_CAPACITY"`
		ActivityLogLimit int    `yaml:"activity_log_limit" env:"STORE_ACTIVITY_LOG_LIMIT"`
		DuplicateWindow  string `yaml:"duplicate_window" env:"STORE_DUPLICATE_WINDOW"`
	} `yaml:"store"`

	Auth struct {
		SuperAdminUsername string `yaml:"super_admin_username" env:"AUTH_SUPER_ADMIN_USERNAME"`
		SuperAdminPassword string `yaml:"super_admin_password" env:"AUTH_SUPER_ADMIN_PASSWORD"`
		JWTSecret          string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
		TokenExpiration    string `yaml:"token_expiration" env:"AUTH_TOKEN_EXPIRATION"`
		Issuer             string `yaml:"issuer" env:"AUTH_ISSUER"`
		BcryptCost         int    `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	// EnvOverrides lists the environment variables applied on load
	EnvOverrides []string `yaml:"-"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	// The file is optional; defaults and env vars are enough to boot
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applied, err := applyEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	config.EnvOverrides = applied

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration populated with defaults only
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.SimulatedLatency = "0s"

	config.Store.Seed = true
	config.Store.SectionCapacity = 30
	config.Store.ActivityLogLimit = 50
	config.Store.DuplicateWindow = "1s"

	config.Auth.SuperAdminUsername = "admin"
	config.Auth.SuperAdminPassword = "admin123"
	config.Auth.JWTSecret = "change-me-in-production"
	config.Auth.TokenExpiration = "8h"
	config.Auth.Issuer = "schooladmin.local"
	config.Auth.BcryptCost = 12

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Store.SectionCapacity <= 0 {
		return fmt.Errorf("section capacity must be positive")
	}

	if config.Store.ActivityLogLimit <= 0 {
		return fmt.Errorf("activity log limit must be positive")
	}

	if config.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if config.Auth.SuperAdminUsername == "" {
		return fmt.Errorf("super admin username is required")
	}

	durations := map[string]string{
		"simulated latency": config.Server.SimulatedLatency,
		"duplicate window":  config.Store.DuplicateWindow,
		"token expiration":  config.Auth.TokenExpiration,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}
