package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/membership.yaml"
	}

	// Ensure absolute path
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	// Read config file
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that every credential the service cannot run without is present.
func (c *Config) Validate() error {
	if c.Service.StripeSecretKey == "" {
		return fmt.Errorf("service.stripe_secret_key is required")
	}
	if c.Service.Supabase.JWTSecret == "" {
		return fmt.Errorf("service.supabase.jwt_secret is required")
	}
	switch c.Service.Store {
	case StoreBackendPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("database.host and database.name are required for the postgres store")
		}
	case StoreBackendSupabase:
		if c.Service.Supabase.ProjectURL == "" || c.Service.Supabase.APIKey == "" {
			return fmt.Errorf("service.supabase.project_url and service.supabase.api_key are required for the supabase store")
		}
	default:
		return fmt.Errorf("service.store must be %q or %q, got %q",
			StoreBackendPostgres, StoreBackendSupabase, c.Service.Store)
	}
	return nil
}
