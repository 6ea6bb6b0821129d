/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configPathEnvVar overrides the config search when set.
const configPathEnvVar = "TAGSTAMP_CONFIG"

// DefaultConfigPaths defines the search order for configuration files.
var DefaultConfigPaths = []string{
	"/etc/tagstamp/config.yaml",
	"/etc/tagstamp/config.yml",
	"./tagstamp.yaml",
	"./tagstamp.yml",
}

// ErrNotFound reports that no configuration file could be located.
var ErrNotFound = errors.New("no config file found")

// Load reads and parses a configuration file from the given path.
// If path is empty, it consults the TAGSTAMP_CONFIG environment variable,
// then searches DefaultConfigPaths. The file is parsed over the built-in
// defaults, so keys omitted from the file keep their default values
// (including the enabled switches, which default to true), and the
// result is validated.
func Load(path string) (*Config, error) {
	configPath, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the built-in defaults
// when no configuration file exists anywhere. Commands use this so that
// tagstamp works out of the box in an unconfigured checkout. An explicit
// path that does not exist is still an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, ErrNotFound) && path == "" {
		return Default(), nil
	}
	return cfg, err
}

// resolveConfigPath determines which config file to use.
// Priority: explicit path > TAGSTAMP_CONFIG env > default paths
func resolveConfigPath(path string) (string, error) {
	// 1. Explicit path provided
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file not found: %s", path)
		}
		return path, nil
	}

	// 2. Environment variable
	if envPath := os.Getenv(configPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("config file from %s not found: %s", configPathEnvVar, envPath)
		}
		return envPath, nil
	}

	// 3. Search default paths
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w (searched: %v)", ErrNotFound, DefaultConfigPaths)
}

// ApplyDefaults fills in default values for unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.General.LogLevel == "" {
		cfg.General.LogLevel = "info"
	}
	if cfg.General.RepoDir == "" {
		cfg.General.RepoDir = "."
	}

	if cfg.Stamp.StorePath == "" {
		cfg.Stamp.StorePath = "version.yaml"
	}
	if cfg.Stamp.VersionKey == "" {
		cfg.Stamp.VersionKey = "version"
	}
	if cfg.Stamp.BuildNumberKey == "" {
		cfg.Stamp.BuildNumberKey = "build_number"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 100
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 200
	}
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.General.LogLevel] {
		return fmt.Errorf("invalid log_level: %q (must be debug, info, warn, or error)", cfg.General.LogLevel)
	}

	if cfg.Stamp.StorePath == "" {
		return fmt.Errorf("stamp store_path is required")
	}
	if cfg.Stamp.VersionKey == "" {
		return fmt.Errorf("stamp version_key is required")
	}
	if cfg.Stamp.VersionKey == cfg.Stamp.BuildNumberKey {
		return fmt.Errorf("stamp version_key and build_number_key must differ (both %q)", cfg.Stamp.VersionKey)
	}
	if cfg.Stamp.ImageKey != "" {
		if cfg.Stamp.ImageBase == "" {
			return fmt.Errorf("stamp image_base is required when image_key is set")
		}
		if cfg.Stamp.ImageKey == cfg.Stamp.VersionKey || cfg.Stamp.ImageKey == cfg.Stamp.BuildNumberKey {
			return fmt.Errorf("stamp image_key %q collides with another stamp key", cfg.Stamp.ImageKey)
		}
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Server.RateLimit <= 0 {
		return fmt.Errorf("server rate_limit must be positive, got %v", cfg.Server.RateLimit)
	}
	if cfg.Server.RateLimitBurst < 1 {
		return fmt.Errorf("server rate_limit_burst must be at least 1, got %d", cfg.Server.RateLimitBurst)
	}

	return nil
}
