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

func commitCmd() *cli.Command {
	return &cli.Command{
		Name:                  "commit",
		EnableShellCompletion: true,
		Usage:                 "Print the commit id of HEAD",
		Description: `Print the commit id of HEAD as a bare line.

The short (abbreviated) id is printed by default; pass --full for the
complete 40-character hash.

# Examples

Print the short commit id:
  tagstamp commit

Print the full commit id of another repository:
  tagstamp commit --repo /src/app --full`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			logLevelFlag,
			&cli.BoolFlag{
				Name:  "full",
				Usage: "Print the full commit id instead of the short form",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			src := newSource(cfg)

			var id string
			if cmd.Bool("full") {
				id, err = src.CommitID(ctx)
			} else {
				id, err = src.ShortCommitID(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Println(id)
			return nil
		},
	}
}
