/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/serializer"
	"github.com/NVIDIA/tagstamp/pkg/version"
)

// VersionArtifact is the version record payload written into published artifacts.
// It is rendered to both version.json and version.yaml inside the artifact layer.
type VersionArtifact struct {
	// Version is the full version string, including the revision when present.
	Version string `json:"version" yaml:"version"`
	// Release is the three-component release string without revision.
	Release string `json:"release" yaml:"release"`
	// Revision is the opaque revision component, when present.
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
	// BuildNumber is the numeric build identifier derived from the version.
	BuildNumber int `json:"build_number" yaml:"build_number"`
	// CreatedAt is the RFC 3339 timestamp the artifact was created.
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// NewVersionArtifact builds the artifact payload for a resolved version.
func NewVersionArtifact(v version.Version, buildNumber int, createdAt string) VersionArtifact {
	return VersionArtifact{
		Version:     v.String(),
		Release:     v.ReleaseString(),
		Revision:    v.Revision,
		BuildNumber: buildNumber,
		CreatedAt:   createdAt,
	}
}

// DefaultTag returns the registry tag for a version. OCI tag grammar does not
// permit "+", so the release form is used and the revision travels in the
// manifest annotations instead.
func DefaultTag(v version.Version) string {
	return "v" + v.ReleaseString()
}

// PublishOptions configures a version record publish operation.
type PublishOptions struct {
	// Reference is the parsed oci:// output target. When its tag is empty,
	// DefaultTag of the version is applied.
	Reference *Reference
	// Version is the resolved version to publish.
	Version version.Version
	// BuildNumber is the numeric build identifier for the version.
	BuildNumber int
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// CreatedAt optionally pins the artifact timestamp for reproducible
	// publishes. The zero value means the current time.
	CreatedAt time.Time
}

// PublishVersion renders a version record to JSON and YAML files and pushes
// them to a registry as a single OCI artifact.
func PublishVersion(ctx context.Context, opts PublishOptions) (*PushResult, error) {
	if opts.Reference == nil || !opts.Reference.IsOCI {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "an oci:// reference is required to publish")
	}

	tag := opts.Reference.Tag
	if tag == "" {
		tag = DefaultTag(opts.Version)
	}

	created := opts.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	artifact := NewVersionArtifact(opts.Version, opts.BuildNumber, created.Format(time.RFC3339))

	dir, err := os.MkdirTemp("", "tagstamp-publish-*")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create staging directory", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	if err := writeVersionFiles(ctx, dir, artifact); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stage version record", err)
	}

	slog.Info("publishing version record as OCI artifact",
		"registry", opts.Reference.Registry,
		"repository", opts.Reference.Repository,
		"tag", tag,
		"version", artifact.Version,
	)

	result, err := Push(ctx, PushOptions{
		SourceDir:   dir,
		Registry:    opts.Reference.Registry,
		Repository:  opts.Reference.Repository,
		Tag:         tag,
		PlainHTTP:   opts.PlainHTTP,
		InsecureTLS: opts.InsecureTLS,
		Annotations: versionAnnotations(artifact),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to push version record", err)
	}

	slog.Info("version record published",
		"reference", result.Reference,
		"digest", result.Digest,
	)

	return result, nil
}

// versionFileNames maps the files staged into each artifact to their formats.
var versionFileNames = map[string]serializer.Format{
	"version.json": serializer.FormatJSON,
	"version.yaml": serializer.FormatYAML,
}

func writeVersionFiles(ctx context.Context, dir string, artifact VersionArtifact) error {
	for name, format := range versionFileNames {
		if err := writeVersionFile(ctx, filepath.Join(dir, name), format, artifact); err != nil {
			return err
		}
	}
	return nil
}

func writeVersionFile(ctx context.Context, path string, format serializer.Format, artifact VersionArtifact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := serializer.NewWriter(format, f).Serialize(ctx, artifact); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}

// versionAnnotations builds the OCI manifest annotations for a version record.
func versionAnnotations(artifact VersionArtifact) map[string]string {
	annotations := map[string]string{
		ociv1.AnnotationVersion: artifact.Version,
		ociv1.AnnotationCreated: artifact.CreatedAt,
		ociv1.AnnotationVendor:  "NVIDIA",
		ociv1.AnnotationTitle:   "tagstamp version record",
	}
	if artifact.Revision != "" {
		annotations[ociv1.AnnotationRevision] = artifact.Revision
	}
	return annotations
}
