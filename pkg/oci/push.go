/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	"github.com/NVIDIA/tagstamp/pkg/defaults"
)

// ArtifactType is the media type for tagstamp OCI artifacts.
const ArtifactType = "application/vnd.nvidia.tagstamp.artifact"

// PushOptions configures the OCI push operation.
type PushOptions struct {
	// SourceDir is the directory containing the files to push.
	SourceDir string
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/tagstamp-versions").
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	Tag string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are manifest annotations to attach to the artifact.
	Annotations map[string]string
}

// PushResult contains the result of a successful OCI push.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed artifact.
	Digest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// Push pushes the contents of a directory to a registry as an OCI artifact using ORAS.
// Pushes are capped at defaults.RegistryPushTimeout even when the caller's
// context carries no deadline.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, fmt.Errorf("tag is required to push OCI image")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.RegistryPushTimeout)
	defer cancel()

	// Convert to absolute path to avoid ORAS working directory issues
	absPushDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for push dir: %w", err)
	}

	// Strip protocol from registry for docker reference compatibility
	registryHost := stripProtocol(opts.Registry)

	// Build and validate the image reference
	refString := fmt.Sprintf("%s/%s:%s", registryHost, opts.Repository, opts.Tag)
	if _, parseErr := reference.ParseNormalizedNamed(refString); parseErr != nil {
		return nil, fmt.Errorf("invalid image reference '%s': %w", refString, parseErr)
	}

	// Create a file store rooted at the directory we want to push
	fs, err := file.New(absPushDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()

	// Make tars deterministic for reproducible builds
	fs.TarReproducible = true

	// Add all contents from the file store root
	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, absPushDir)
	if err != nil {
		return nil, fmt.Errorf("failed to add source directory to store: %w", err)
	}

	// Pack an OCI 1.1 manifest with our artifact type
	packOpts := oras.PackManifestOptions{
		Layers:              []ociv1.Descriptor{layerDesc},
		ManifestAnnotations: opts.Annotations,
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	// Tag the local manifest so we can copy by tag
	if tagErr := fs.Tag(ctx, manifestDesc, opts.Tag); tagErr != nil {
		return nil, fmt.Errorf("failed to tag manifest in local store: %w", tagErr)
	}

	// Prepare remote repository
	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", registryHost, opts.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP

	// Configure auth client using Docker credentials if available
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	// Copy from the local file store to the remote repository
	desc, err := oras.Copy(ctx, fs, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

// stripProtocol removes http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}
