/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/tagstamp/pkg/config"
	"github.com/NVIDIA/tagstamp/pkg/defaults"
	"github.com/NVIDIA/tagstamp/pkg/oci"
	"github.com/NVIDIA/tagstamp/pkg/serializer"
	"github.com/NVIDIA/tagstamp/pkg/stamper"
	ver "github.com/NVIDIA/tagstamp/pkg/version"
)

// publishCmdOptions holds parsed options for the publish command.
type publishCmdOptions struct {
	repository  string
	tag         string
	record      string
	plainHTTP   bool
	insecureTLS bool
	dryRun      bool
}

// parsePublishCmdOptions parses command options, falling back to the
// publish section of the config where flags are unset.
func parsePublishCmdOptions(cmd *cli.Command, cfg *config.Config) (*publishCmdOptions, error) {
	opts := &publishCmdOptions{
		repository:  cmd.String("repository"),
		tag:         cmd.String("tag"),
		record:      cmd.String("record"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure-tls"),
		dryRun:      cmd.Bool("dry-run"),
	}

	if opts.repository == "" {
		opts.repository = cfg.Publish.Repository
	}
	if opts.repository == "" {
		return nil, fmt.Errorf("--repository is required (or set publish.repository in the config)")
	}

	if !opts.plainHTTP {
		opts.plainHTTP = cfg.Publish.PlainHTTP
	}

	return opts, nil
}

// publishVersion yields the version to publish: the record file when
// --record was given, the repository otherwise.
func publishVersion(ctx context.Context, cfg *config.Config, opts *publishCmdOptions) (ver.Version, error) {
	if opts.record == "" {
		return newSource(cfg).CurrentVersion(ctx)
	}

	rep, err := serializer.FromFile[versionReport](opts.record)
	if err != nil {
		return ver.Version{}, fmt.Errorf("failed to read version record %q: %w", opts.record, err)
	}

	v, err := ver.ParseVersion(rep.Version)
	if err != nil {
		return ver.Version{}, fmt.Errorf("version record %q holds no usable version: %w", opts.record, err)
	}

	slog.Debug("publishing from version record", "record", opts.record, "version", v.String())
	return v, nil
}

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:                  "publish",
		EnableShellCompletion: true,
		Usage:                 "Publish the resolved version record to an OCI registry",
		Description: `Render the resolved version as an artifact and push it to a registry.

The artifact carries the version record as version.json and version.yaml
layers, annotated with the release string, revision, and build number. The
tag defaults to the v-prefixed release (e.g. "v1.4.2") unless --tag or a
tag on the repository reference overrides it.

The version comes from the repository by default, resolved strictly:
publishing requires a version. Alternatively --record publishes a version
record file previously written by "tagstamp current --output", without
touching git, so the pushed version is exactly the one the build stamped.

# Examples

Publish to the configured repository (publish.repository):
  tagstamp publish

Publish to an explicit repository:
  tagstamp publish --repository ghcr.io/org/versions

Publish the record captured earlier in the build:
  tagstamp current -o version.json
  tagstamp publish --record version.json

Publish to a local registry over HTTP:
  tagstamp publish --repository localhost:5000/versions --plain-http

Show what would be pushed without pushing:
  tagstamp publish --dry-run`,
		Flags: []cli.Flag{
			configFlag,
			repoFlag,
			logLevelFlag,
			&cli.StringFlag{
				Name:    "repository",
				Aliases: []string{"r"},
				Usage:   "OCI repository to publish to, e.g. ghcr.io/org/versions",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Tag for the published artifact (default: v-prefixed release)",
			},
			&cli.StringFlag{
				Name:  "record",
				Usage: "Publish the version from a record file instead of resolving git",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the registry connection",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve and render but do not push",
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

			opts, err := parsePublishCmdOptions(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLIPublishTimeout)
			defer cancel()

			v, err := publishVersion(ctx, cfg, opts)
			if err != nil {
				return err
			}

			target := opts.repository
			if !strings.HasPrefix(target, oci.URIScheme) {
				target = oci.URIScheme + target
			}
			ref, err := oci.ParseOutputTarget(target)
			if err != nil {
				return err
			}
			if opts.tag != "" {
				ref = ref.WithTag(opts.tag)
			}

			if opts.dryRun {
				tag := ref.Tag
				if tag == "" {
					tag = oci.DefaultTag(v)
				}
				res := &oci.PushResult{Reference: ref.WithTag(tag).ImageReference()}
				slog.Info("dry run, skipping registry push", "reference", res.Reference)
				return writeOutput(ctx, cmd, outFormat, res)
			}

			res, err := oci.PublishVersion(ctx, oci.PublishOptions{
				Reference:   ref,
				Version:     v,
				BuildNumber: stamper.BuildNumber(v),
				PlainHTTP:   opts.plainHTTP,
				InsecureTLS: opts.insecureTLS,
			})
			if err != nil {
				return err
			}

			slog.Info("version published", "reference", res.Reference, "digest", res.Digest)
			return writeOutput(ctx, cmd, outFormat, res)
		},
	}
}
