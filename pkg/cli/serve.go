/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the version status daemon",
		Description: `Run the HTTP daemon that serves the resolved version of a repository.

The daemon resolves the version once at startup and caches it; requests are
answered from the cache without running git. A refresh re-resolves on demand:

  GET  /v1/version  - the cached version record
  POST /v1/refresh  - re-resolve and return the new record

The listen port comes from server.port in the config (default 8080), and
the server can be disabled entirely with server.enabled: false.

# Examples

Serve the current directory's version:
  tagstamp serve

Serve a specific repository with debug logging:
  tagstamp serve --repo /src/app --log-level debug`,
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

			return api.ServeWithConfig(ctx, cfg)
		},
	}
}
