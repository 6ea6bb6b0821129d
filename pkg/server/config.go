// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/tagstamp/pkg/defaults"

	"golang.org/x/time/rate"
)

const (
	defaultName           = "server"
	defaultPort           = 8080
	defaultRateLimit      = rate.Limit(100)
	defaultRateLimitBurst = 200

	portEnvVar            = "PORT"
	shutdownTimeoutEnvVar = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Config holds the HTTP server configuration. NewConfig fills every
// field with a usable default; the PORT and SHUTDOWN_TIMEOUT_SECONDS
// environment variables override their respective defaults, and
// options passed to New override both.
type Config struct {
	// Name identifies the server in logs and the root index response.
	Name string

	// Version is the build version reported by the root index response.
	Version string

	// Handlers maps URL paths to application handlers. Each one is
	// wrapped in the standard middleware chain during route setup.
	Handlers map[string]http.HandlerFunc

	// Address is the interface to bind to; empty means all interfaces.
	Address string

	// Port is the TCP port to listen on.
	Port int

	// RateLimit is the sustained request rate shared by all clients.
	RateLimit rate.Limit

	// RateLimitBurst is the token bucket size of the rate limiter.
	RateLimitBurst int

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a Config populated with defaults and environment
// overrides.
func NewConfig() *Config {
	return parseConfig()
}

func parseConfig() *Config {
	cfg := &Config{
		Name:              defaultName,
		Port:              defaultPort,
		RateLimit:         defaultRateLimit,
		RateLimitBurst:    defaultRateLimitBurst,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if v := os.Getenv(portEnvVar); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			cfg.Port = port
		} else {
			slog.Warn("ignoring invalid port from environment",
				"var", portEnvVar, "value", v)
		}
	}

	if v := os.Getenv(shutdownTimeoutEnvVar); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.ShutdownTimeout = time.Duration(secs) * time.Second
		} else {
			slog.Warn("ignoring invalid shutdown timeout from environment",
				"var", shutdownTimeoutEnvVar, "value", v)
		}
	}

	return cfg
}

// ListenAddress returns the host:port string the server binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
