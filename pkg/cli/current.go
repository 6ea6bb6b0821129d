/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/defaults"
	"github.com/NVIDIA/tagstamp/pkg/stamper"
	ver "github.com/NVIDIA/tagstamp/pkg/version"
)

// versionReport is the serialized output of the current command.
type versionReport struct {
	Version     string `json:"version" yaml:"version"`
	Release     string `json:"release" yaml:"release"`
	Prefixed    string `json:"prefixed" yaml:"prefixed"`
	BuildNumber int    `json:"build_number" yaml:"build_number"`
	Commit      string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Repository  string `json:"repository" yaml:"repository"`
}

func newVersionReport(v ver.Version, dir string) versionReport {
	return versionReport{
		Version:     v.String(),
		Release:     v.ReleaseString(),
		Prefixed:    v.Prefixed(),
		BuildNumber: stamper.BuildNumber(v),
		Commit:      v.Revision,
		Repository:  dir,
	}
}

func currentCmd() *cli.Command {
	return &cli.Command{
		Name:                  "current",
		EnableShellCompletion: true,
		Usage:                 "Resolve and print the current repository version",
		Description: `Resolve the current version of a git repository and print it.

The version is the latest reachable tag parsed as MAJOR.MINOR.PATCH with the
short commit id of HEAD attached as the revision, e.g. "1.4.2+9f3b21c". The
printed record also carries the release string (no revision), the v-prefixed
form, and the numeric build number derived from the triple.

By default a repository without a usable version tag resolves to nothing: the
command logs a warning and exits zero without output, so build scripts can
run it unconditionally. Pass --strict (or set stamp.fail_on_error in the
config) to turn resolution failures into hard errors instead.

# Examples

Print the version of the current directory as YAML:
  tagstamp current

Print as JSON for scripting:
  tagstamp current --format json

Resolve a different repository and fail when it has no version tag:
  tagstamp current --repo /src/app --strict

Write the record to a file:
  tagstamp current -o version-info.yaml`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			logLevelFlag,
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when no version can be resolved",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Parse output format
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			src := newSource(cfg)

			if cmd.Bool("strict") || cfg.Stamp.FailOnError {
				v, err := src.CurrentVersion(ctx)
				if err != nil {
					return err
				}
				return writeOutput(ctx, cmd, outFormat, newVersionReport(v, src.Dir()))
			}

			v, ok := src.TryCurrentVersion(ctx)
			if !ok {
				slog.Warn("no version could be resolved", "dir", src.Dir())
				return nil
			}

			return writeOutput(ctx, cmd, outFormat, newVersionReport(v, src.Dir()))
		},
	}
}
