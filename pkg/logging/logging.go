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

package logging

import (
	"log"
	"log/slog"
	"os"
	"strings"
)

// logLevelEnvVar controls the default log level when no explicit level is given.
const logLevelEnvVar = "LOG_LEVEL"

// SetDefaultStructuredLogger configures the process-wide default slog logger
// with JSON output to stderr and module/version context attributes.
// The log level is resolved from the LOG_LEVEL environment variable,
// defaulting to INFO when unset.
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, "")
}

// SetDefaultStructuredLoggerWithLevel configures the process-wide default slog
// logger with an explicit level name. An empty level falls back to the
// LOG_LEVEL environment variable, then to INFO.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewStructuredLogger creates a slog logger with JSON output to stderr,
// module and version context attributes, and the given level name.
// Debug level enables source location tracking on every record.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(resolveLevel(level))
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// NewLogLogger returns a standard library *log.Logger that writes through the
// structured JSON handler at the given level. Useful for components such as
// http.Server that only accept a *log.Logger.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
	})
	return slog.NewLogLogger(handler, level)
}

// ParseLogLevel maps a case-insensitive level name to a slog.Level.
// Recognized names are DEBUG, INFO, WARN, WARNING, and ERROR.
// Unknown or empty input defaults to INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func resolveLevel(level string) string {
	if strings.TrimSpace(level) != "" {
		return level
	}
	return os.Getenv(logLevelEnvVar)
}
