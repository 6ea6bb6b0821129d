// Package oci provides functionality for publishing version records to OCI-compliant registries.
//
// This package enables stamped version records to be pushed to any OCI-compliant registry
// (Docker Hub, GHCR, ECR, local registries, etc.) using the ORAS (OCI Registry As Storage)
// library. Records are packaged as OCI artifacts and tagged with the release version.
//
// # Overview
//
// The package provides two main operations:
//   - PublishVersion: Renders a version record to JSON and YAML files and pushes
//     them as a single OCI artifact
//   - Push: Pushes an arbitrary directory as an OCI artifact (used by PublishVersion)
//
// Output targets are parsed with ParseOutputTarget, which accepts either an
// oci:// URI or a local directory path.
//
// # Core Types
//
//   - Reference: Parsed output target (registry/repository/tag or local path)
//   - VersionArtifact: The version record payload written into the artifact
//   - PushOptions: Configuration for pushing to remote registries
//   - PushResult: Result of a successful push (digest, reference)
//
// # Usage
//
// Publish a resolved version:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/nvidia/tagstamp-versions")
//	if err != nil {
//	    return err
//	}
//
//	result, err := oci.PublishVersion(ctx, oci.PublishOptions{
//	    Reference:   ref,
//	    Version:     ver,
//	    BuildNumber: buildNumber,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Reference, result.Digest)
//
// When the reference carries no tag, the release version (e.g., "v1.2.3") is
// used. Revisions never appear in tags; they are carried in the
// org.opencontainers.image.revision annotation instead, since OCI tag grammar
// does not permit "+".
//
// # Configuration
//
// PushOptions supports several configuration options:
//   - PlainHTTP: Use HTTP instead of HTTPS (for local development registries)
//   - InsecureTLS: Skip TLS certificate verification
//
// # Authentication
//
// The package automatically uses Docker credential helpers for authentication.
// Credentials are loaded from the standard Docker configuration (~/.docker/config.json)
// using the ORAS credentials package.
//
// # Artifact Type
//
// Artifacts are pushed with the media type "application/vnd.nvidia.tagstamp.artifact".
// This custom media type distinguishes version records from runnable container
// images. Consumers that don't understand this type should treat the artifact
// as a non-executable blob.
package oci
