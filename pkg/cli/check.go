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

	"github.com/NVIDIA/tagstamp/pkg/defaults"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Check whether the directory is a git repository",
		Description: `Check whether the configured directory is inside a git work tree.

The command exits zero when the directory belongs to a git repository and
non-zero otherwise, printing nothing on success. It is meant for guarding
pipeline steps:

  tagstamp check && tagstamp stamp

A missing git binary counts as "not a repository".

# Examples

Check the current directory:
  tagstamp check

Check another directory:
  tagstamp check --repo /src/app`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			logLevelFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.GitProbeTimeout)
			defer cancel()

			src := newSource(cfg)
			if !src.IsRepository(ctx) {
				return fmt.Errorf("not a git repository: %s", src.Dir())
			}

			slog.Debug("git repository detected", "dir", src.Dir())
			return nil
		},
	}
}
