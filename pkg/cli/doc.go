// Package cli implements the command-line interface for the tagstamp tool.
//
// # Overview
//
// The tagstamp CLI resolves a project's version from its git repository
// (latest reachable tag plus the short commit id of HEAD) and stamps it into
// build manifests, derives image references, and publishes version records.
// It is designed for build pipelines that want the repository itself to be
// the single source of version truth.
//
// # Commands
//
// current - Resolve and print the repository version:
//
//	tagstamp current [--strict] [--output FILE] [--format yaml|json|table]
//
// Resolves the latest reachable tag and attaches the short commit id of HEAD
// as the revision. Prints the canonical version, release string, prefixed
// form, build number, and commit. Without --strict, an unresolvable version
// logs a warning and exits zero.
//
// check - Repository probe:
//
//	tagstamp check [--repo DIR]
//
// Exits zero when the directory is inside a git work tree, non-zero
// otherwise. Prints nothing; built for guarding pipeline steps.
//
// tag / commit - Raw queries:
//
//	tagstamp tag
//	tagstamp commit [--full]
//
// Print the latest reachable tag or the commit id of HEAD as bare lines for
// shell composition.
//
// stamp / restore / recover - Manifest stamping:
//
//	tagstamp stamp [--manifest FILE]
//	tagstamp restore [--manifest FILE]
//	tagstamp recover [--manifest FILE]
//
// stamp writes the release string, build number, and optional image
// reference into the manifest, backing up prior values first. restore puts
// the originals back. recover rolls back a stamp left behind by a build
// that died before restoring, refusing while the owning process still runs.
//
// image - Derived image reference:
//
//	tagstamp image --base ghcr.io/org/app
//
// Prints the base reference tagged with the v-prefixed release.
//
// publish - Version record artifact:
//
//	tagstamp publish [--repository REF] [--dry-run]
//
// Renders the resolved version as version.json/version.yaml layers and
// pushes them to an OCI registry via ORAS.
//
// serve - Status daemon:
//
//	tagstamp serve
//
// Runs the HTTP daemon serving the cached version record.
//
// # Global Flags
//
//	--config, -c    Config file path (default: standard search locations)
//	--repo          Git repository directory (default: current directory)
//	--manifest, -m  Manifest file for stamping commands
//	--log-level     Log level: debug, info, warn, error
//	--output, -o    Output file path (default: stdout)
//	--format, -t    Output format: yaml, json, table (default: yaml)
//
// # Output Formats
//
// YAML (default):
//   - Human-readable, preserves structure
//   - Suitable for version control
//
// JSON:
//   - Machine-parseable, compact
//   - Suitable for programmatic consumption
//
// Table:
//   - Flattened key/value text representation
//   - Suitable for terminal viewing
//
// # Usage Examples
//
// Stamp a manifest for the duration of a build:
//
//	tagstamp stamp --manifest deploy/values.yaml
//	make release
//	tagstamp restore --manifest deploy/values.yaml
//
// Tag an image build with the current version:
//
//	docker build -t $(tagstamp image --base ghcr.io/org/app) .
//
// Publish the version record next to the release:
//
//	tagstamp publish --repository ghcr.io/org/versions
//
// # Environment Variables
//
//	TAGSTAMP_CONFIG  Config file path (same as --config)
//	LOG_LEVEL        Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/git - Version resolution from git
//   - pkg/stamper - Manifest stamping and recovery
//   - pkg/oci - Image references and registry publishing
//   - pkg/api - The version status daemon
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/tagstamp/pkg/cli.version=1.0.0'"
package cli
