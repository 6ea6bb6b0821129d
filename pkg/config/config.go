/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package config provides configuration structures and loading for tagstamp.
package config

// Config is the main configuration structure for tagstamp.
type Config struct {
	General GeneralConfig `yaml:"general"`
	Stamp   StampConfig   `yaml:"stamp"`
	Server  ServerConfig  `yaml:"server"`
	Publish PublishConfig `yaml:"publish"`
}

// GeneralConfig contains settings shared by every command.
type GeneralConfig struct {
	// LogLevel sets the logging verbosity: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// RepoDir is the git repository directory versions are read from
	RepoDir string `yaml:"repo_dir"`
	// GitPath optionally pins the git binary instead of resolving from PATH
	GitPath string `yaml:"git_path"`
}

// StampConfig controls how resolved versions are written into the
// project's version store.
type StampConfig struct {
	// Enabled controls whether stamping runs at all; when false the
	// stamp operation is a no-op that reports success.
	// Defaults to true when omitted from the config file.
	Enabled bool `yaml:"enabled"`
	// Verbose enables detailed progress logging during stamping
	Verbose bool `yaml:"verbose"`
	// FailOnError escalates resolution failures to hard errors;
	// when false a failed resolution only logs a warning
	FailOnError bool `yaml:"fail_on_error"`
	// StorePath is the YAML file holding stamped values
	StorePath string `yaml:"store_path"`
	// VersionKey is the store key receiving the release string
	VersionKey string `yaml:"version_key"`
	// BuildNumberKey is the store key receiving the numeric build number
	BuildNumberKey string `yaml:"build_number_key"`
	// ImageKey is the store key receiving the derived image reference;
	// empty disables image stamping
	ImageKey string `yaml:"image_key"`
	// ImageBase is the bare repository reference tagged with the version,
	// e.g. "ghcr.io/org/app"; required when image_key is set
	ImageBase string `yaml:"image_base"`
}

// ServerConfig defines the version daemon settings.
type ServerConfig struct {
	// Enabled controls whether tagstampd serves HTTP at all.
	// Defaults to true when omitted from the config file.
	Enabled bool `yaml:"enabled"`
	// Address is the interface to bind to; empty means all interfaces
	Address string `yaml:"address"`
	// Port is the TCP port to listen on
	Port int `yaml:"port"`
	// RateLimit is the allowed requests per second per server
	RateLimit float64 `yaml:"rate_limit"`
	// RateLimitBurst is the rate limiter burst size
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// PublishConfig defines where version artifacts are pushed.
type PublishConfig struct {
	// Repository is the OCI repository reference,
	// e.g. "registry.example.com/org/versions"
	Repository string `yaml:"repository"`
	// PlainHTTP disables TLS for the registry connection (local registries)
	PlainHTTP bool `yaml:"plain_http"`
}

// Default returns a Config populated with the documented defaults.
// Boolean feature switches default to on; ApplyDefaults cannot supply
// those because false is indistinguishable from unset.
func Default() *Config {
	cfg := &Config{}
	cfg.Stamp.Enabled = true
	cfg.Server.Enabled = true
	ApplyDefaults(cfg)
	return cfg
}
