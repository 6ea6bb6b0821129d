/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/config"
	"github.com/NVIDIA/tagstamp/pkg/defaults"
	"github.com/NVIDIA/tagstamp/pkg/stamper"
	"github.com/NVIDIA/tagstamp/pkg/store"
)

// buildStamper wires the manifest store, the git resolver, and the
// stamper from configuration. The owner pid is the parent process so
// the stamp marker lives as long as the invoking build.
func buildStamper(cfg *config.Config) *stamper.Stamper {
	st := store.NewFileStore(cfg.Stamp.StorePath)
	return stamper.New(st, newSource(cfg), stamperConfig(cfg), stamper.WithOwnerPID(os.Getppid()))
}

func stamperConfig(cfg *config.Config) stamper.Config {
	return stamper.Config{
		Enabled:        cfg.Stamp.Enabled,
		Verbose:        cfg.Stamp.Verbose,
		FailOnError:    cfg.Stamp.FailOnError,
		VersionKey:     cfg.Stamp.VersionKey,
		BuildNumberKey: cfg.Stamp.BuildNumberKey,
		ImageKey:       cfg.Stamp.ImageKey,
		ImageBase:      cfg.Stamp.ImageBase,
	}
}

func stampCmd() *cli.Command {
	return &cli.Command{
		Name:                  "stamp",
		EnableShellCompletion: true,
		Usage:                 "Stamp the resolved version into the manifest",
		Description: `Resolve the repository version and write it into the manifest file.

The release string (no revision) replaces the manifest's version value, and
the numeric build number derived from the triple is written alongside it.
When stamp.image_key is configured, a version-tagged image reference derived
from stamp.image_base is written as well.

Before the first write the prior values are backed up next to their keys, so
a later "tagstamp restore" can put the originals back. Stamping the same
manifest again reuses the existing backup instead of overwriting it. A
leftover backup from a crashed run is rolled back automatically before the
new stamp is applied.

When stamping is disabled in the config (stamp.enabled: false) the command
warns and exits without touching the manifest. When the version cannot be
resolved the stamp is skipped quietly unless stamp.fail_on_error is set.

# Examples

Stamp version.yaml in the current directory:
  tagstamp stamp

Stamp a specific manifest from a specific repository:
  tagstamp stamp --repo /src/app --manifest /src/app/deploy/values.yaml

Print the stamp result as JSON:
  tagstamp stamp --format json`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			manifestFlag,
			logLevelFlag,
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

			if !cfg.Stamp.Enabled {
				slog.Warn("stamping is disabled in configuration (stamp.enabled), nothing to do")
				return nil
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLICommandTimeout)
			defer cancel()

			res, err := buildStamper(cfg).Stamp(ctx)
			if err != nil {
				return err
			}

			slog.Info("stamp completed",
				"stamped", res.Stamped,
				"manifest", cfg.Stamp.StorePath,
				"release", res.Release,
				"build_number", res.BuildNumber)

			return writeOutput(ctx, cmd, outFormat, res)
		},
	}
}

func restoreCmd() *cli.Command {
	return &cli.Command{
		Name:                  "restore",
		EnableShellCompletion: true,
		Usage:                 "Restore the manifest values replaced by stamping",
		Description: `Put the manifest back the way it was before stamping.

Every stamped key is restored from its backup: keys that existed before the
stamp get their original values back, keys the stamp introduced are removed.
The backups and the stamp marker are deleted afterwards. Restoring a
manifest that was never stamped is a no-op.

Run this at the end of a build, successful or not:

  tagstamp stamp
  make release
  tagstamp restore

# Examples

Restore the configured manifest:
  tagstamp restore

Restore a specific manifest:
  tagstamp restore --manifest deploy/values.yaml`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			manifestFlag,
			logLevelFlag,
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := buildStamper(cfg).Restore(); err != nil {
				return err
			}

			slog.Info("manifest restored", "manifest", cfg.Stamp.StorePath)
			return nil
		},
	}
}

func recoverCmd() *cli.Command {
	return &cli.Command{
		Name:                  "recover",
		EnableShellCompletion: true,
		Usage:                 "Roll back a stamp left behind by an interrupted build",
		Description: `Detect and roll back a stamp whose build never restored the manifest.

A stamped manifest records the process id of the build that owns the stamp.
When that process is gone, the leftover backup is restored exactly like
"tagstamp restore" would have. When the owning process is still running the
command refuses to touch the manifest and exits non-zero, since the stamp is
legitimately in progress.

Run this before builds that share a manifest with other jobs:

  tagstamp recover && tagstamp stamp

# Examples

Recover the configured manifest:
  tagstamp recover

Recover a specific manifest:
  tagstamp recover --manifest deploy/values.yaml`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			manifestFlag,
			logLevelFlag,
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			recovered, err := buildStamper(cfg).Recover()
			if err != nil {
				return err
			}

			if recovered {
				slog.Info("interrupted stamp rolled back", "manifest", cfg.Stamp.StorePath)
			} else {
				slog.Debug("no interrupted stamp found", "manifest", cfg.Stamp.StorePath)
			}
			return nil
		},
	}
}
