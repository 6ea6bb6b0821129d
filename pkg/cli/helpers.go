/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/config"
	"github.com/NVIDIA/tagstamp/pkg/git"
	"github.com/NVIDIA/tagstamp/pkg/logging"
	"github.com/NVIDIA/tagstamp/pkg/serializer"
)

// Flags shared across commands.
var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the tagstamp config file (default: standard search locations)",
		Sources: cli.EnvVars("TAGSTAMP_CONFIG"),
	}

	repoFlag = &cli.StringFlag{
		Name:  "repo",
		Usage: "Git repository directory to resolve versions from (default: current directory)",
	}

	manifestFlag = &cli.StringFlag{
		Name:    "manifest",
		Aliases: []string{"m"},
		Usage:   "Path to the manifest file stamping writes to (default: version.yaml)",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level: debug, info, warn, error (default: info)",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   "yaml",
		Usage:   "Output format: yaml, json, table",
	}
)

// parseOutputFormat reads the format flag and rejects unknown values.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", outFormat)
	}
	return outFormat, nil
}

// loadConfig resolves the effective configuration for a command: config
// file values first, then flag overrides, then validation. It also
// initializes the process logger at the configured level.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if repo := cmd.String("repo"); repo != "" {
		cfg.General.RepoDir = repo
	}
	if manifest := cmd.String("manifest"); manifest != "" {
		cfg.Stamp.StorePath = manifest
	}
	if level := cmd.String("log-level"); level != "" {
		cfg.General.LogLevel = level
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.General.LogLevel)

	return cfg, nil
}

// newSource builds the git version source for the configured repository.
func newSource(cfg *config.Config) *git.Source {
	var opts []git.Option
	if cfg.General.GitPath != "" {
		opts = append(opts, git.WithGitPath(cfg.General.GitPath))
	}
	return git.New(cfg.General.RepoDir, opts...)
}

// writeOutput serializes v to the destination named by the output flag,
// falling back to stdout.
func writeOutput(ctx context.Context, cmd *cli.Command, outFormat serializer.Format, v any) error {
	ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	return ser.Serialize(ctx, v)
}
