// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/version"
)

// URIScheme is the URI scheme for OCI registry output (e.g., "oci://ghcr.io/org/repo:tag").
const URIScheme = "oci://"

// Reference represents a parsed output target, which can be either an OCI registry
// reference or a local directory path.
type Reference struct {
	// IsOCI indicates whether this is an OCI registry reference (true) or local path (false).
	IsOCI bool
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	// Only populated when IsOCI is true.
	Registry string
	// Repository is the image repository path (e.g., "nvidia/tagstamp-versions").
	// Only populated when IsOCI is true.
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	// Empty string means no tag was specified; caller should apply a default.
	// Only populated when IsOCI is true.
	Tag string
	// LocalPath is the local directory path for non-OCI output.
	// Only populated when IsOCI is false.
	LocalPath string
}

// ParseOutputTarget parses an output target string to detect OCI URI or local directory.
// For OCI URIs (oci://registry/repository:tag), it extracts the components.
// For plain paths, it treats them as local directories.
//
// If no tag is specified in an OCI URI, Tag will be empty; the caller is responsible
// for applying a default (e.g., the release version).
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{
			IsOCI:     false,
			LocalPath: target,
		}, nil
	}

	// Strip oci:// and parse as standard image reference
	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	// Extract components using the reference package
	registry := reference.Domain(ref)
	repository := reference.Path(ref)

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}
	// If no tag specified, return empty string; caller will apply default

	// Validate registry and repository format
	if err := ValidateRegistryReference(registry, repository); err != nil {
		return nil, err
	}

	return &Reference{
		IsOCI:      true,
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// ValidateRegistryReference validates a registry host and repository path pair.
// The registry may carry an http:// or https:// prefix, which is ignored.
//
// The pair is valid when it parses as a named docker reference whose domain is
// the given registry. The domain check rejects host-less inputs that the parser
// would otherwise silently normalize onto docker.io.
func ValidateRegistryReference(registry, repository string) error {
	host := stripProtocol(registry)

	named, err := reference.ParseNormalizedNamed(fmt.Sprintf("%s/%s", host, repository))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid registry reference %q/%q", registry, repository), err)
	}

	if reference.Domain(named) != host {
		return apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("registry %q is not a valid registry host", registry))
	}

	return nil
}

// TagReference appends a version tag to a base repository reference,
// e.g. "ghcr.io/org/app" + 1.4.2 -> "ghcr.io/org/app:v1.4.2".
//
// The base must name a bare repository with an explicit registry host;
// references already carrying a tag or digest are rejected, as are
// host-less names the parser would normalize onto docker.io. OCI tag
// grammar has no "+", so the tag uses the prefixed release form and the
// revision travels in manifest annotations instead.
func TagReference(base string, v version.Version) (string, error) {
	named, err := reference.ParseNormalizedNamed(base)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid base image reference %q", base), err)
	}

	if !strings.HasPrefix(base, reference.Domain(named)+"/") {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base image reference %q must include a registry host", base))
	}
	if _, ok := named.(reference.Tagged); ok {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base image reference %q must not carry a tag", base))
	}
	if _, ok := named.(reference.Digested); ok {
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("base image reference %q must not carry a digest", base))
	}

	tagged, err := reference.WithTag(named, DefaultTag(v))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("failed to tag image reference %q", base), err)
	}
	return tagged.String(), nil
}

// String returns the full reference string.
// For OCI references: "oci://registry/repository:tag" (or without tag if empty).
// For local paths: the local path.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s%s/%s", URIScheme, r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the Docker-style image reference (without oci:// scheme).
// Returns empty string for non-OCI references.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the specified tag.
// For non-OCI references, returns the same reference unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	return &Reference{
		IsOCI:      true,
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}
