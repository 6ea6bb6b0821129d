/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/defaults"
	"github.com/NVIDIA/tagstamp/pkg/oci"
)

func imageCmd() *cli.Command {
	return &cli.Command{
		Name:                  "image",
		EnableShellCompletion: true,
		Usage:                 "Print a version-tagged image reference",
		Description: `Derive a container image reference tagged with the resolved version.

The base reference must name a registry host and repository without a tag or
digest, e.g. "ghcr.io/org/app". The resolved version is appended as a
v-prefixed tag, producing "ghcr.io/org/app:v1.4.2". Revisions do not appear
in tags; the tag tracks the release triple only.

The reference is printed as a bare line so it composes in shell:

  docker build -t $(tagstamp image --base ghcr.io/org/app) .

Version resolution is always strict here: a repository without a usable
version tag is an error, because an image cannot be tagged with nothing.

# Examples

Derive a reference from the current repository:
  tagstamp image --base ghcr.io/org/app

Use the configured base (stamp.image_base):
  tagstamp image`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			logLevelFlag,
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "Base image reference without tag, e.g. ghcr.io/org/app",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			base := cmd.String("base")
			if base == "" {
				base = cfg.Stamp.ImageBase
			}
			if base == "" {
				return fmt.Errorf("--base is required (or set stamp.image_base in the config)")
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			v, err := newSource(cfg).CurrentVersion(ctx)
			if err != nil {
				return err
			}

			ref, err := oci.TagReference(base, v)
			if err != nil {
				return err
			}

			fmt.Println(ref)
			return nil
		},
	}
}
