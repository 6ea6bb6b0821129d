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
)

func tagCmd() *cli.Command {
	return &cli.Command{
		Name:                  "tag",
		EnableShellCompletion: true,
		Usage:                 "Print the latest reachable git tag",
		Description: `Print the latest tag reachable from HEAD, exactly as git reports it.

The tag is printed as a bare line so it composes in shell:

  VERSION=$(tagstamp tag)

The command fails when the directory is not a git repository or no tag is
reachable from HEAD.

# Examples

Print the latest tag of the current directory:
  tagstamp tag

Print the latest tag of another repository:
  tagstamp tag --repo /src/app`,
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

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			tag, err := newSource(cfg).LatestTag(ctx)
			if err != nil {
				return err
			}

			fmt.Println(tag)
			return nil
		},
	}
}
