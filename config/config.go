// Copyright 2025 DataShelf
// SPDX-License-Identifier: Apache-2.0

// Package config loads the connector's runtime configuration from an optional
// YAML file with environment variable overrides. Environment variables always
// win over file values.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is consulted when DATASHELF_CONFIG is unset. A missing
// default file is not an error.
const DefaultConfigFile = "connector.yaml"

const defaultPort = "8084"

// DatabaseConfig selects the backing database.
type DatabaseConfig struct {
	Driver string `yaml:"driver,omitempty"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Config is the connector's full runtime configuration.
type Config struct {
	Port         string         `yaml:"port,omitempty"`
	APIKey       string         `yaml:"api_key,omitempty"`
	JWTSecret    string         `yaml:"jwt_secret,omitempty"`
	Database     DatabaseConfig `yaml:"database,omitempty"`
	SeedDemoData bool           `yaml:"seed_demo_data,omitempty"`
}

// Load reads the config file (if any), applies environment overrides, and
// validates the result. The API key and JWT secret have no defaults: a
// deployment must provide them explicitly.
func Load() (Config, error) {
	config := Config{
		Port:         defaultPort,
		SeedDemoData: true,
	}

	path := os.Getenv("DATASHELF_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if err := loadFile(&config, path, explicit); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&config)

	if config.APIKey == "" {
		return Config{}, fmt.Errorf("API key is not configured (set DATASHELF_API_KEY)")
	}
	if config.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT secret is not configured (set DATASHELF_JWT_SECRET)")
	}
	if config.Port == "" {
		config.Port = defaultPort
	}

	return config, nil
}

// loadFile merges YAML file values into config. When the file path was not
// set explicitly, a missing file is silently skipped.
func loadFile(config *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		config.Port = port
	}
	if apiKey := os.Getenv("DATASHELF_API_KEY"); apiKey != "" {
		config.APIKey = apiKey
	}
	if secret := os.Getenv("DATASHELF_JWT_SECRET"); secret != "" {
		config.JWTSecret = secret
	}
	if driver := os.Getenv("DATABASE_DRIVER"); driver != "" {
		config.Database.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		config.Database.DSN = dsn
	}
	if seed := os.Getenv("DATASHELF_SEED_DEMO_DATA"); seed != "" {
		config.SeedDemoData = strings.EqualFold(seed, "true") || seed == "1"
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars substitutes ${VAR} references in file content with the
// environment's values. Unset variables expand to the empty string.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
