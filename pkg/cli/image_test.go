/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestImageCmdRequiresBase(t *testing.T) {
	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")

	err := imageCmd().Run(context.Background(), []string{
		"image",
		"--config", cfgPath,
		"--repo", t.TempDir(),
	})
	if err == nil {
		t.Fatal("image without a base reference should fail")
	}
	if !strings.Contains(err.Error(), "--base is required") {
		t.Errorf("error = %v, want mention of --base is required", err)
	}
}

func TestImageCmdBaseFromConfig(t *testing.T) {
	// The configured base is accepted, but resolution still fails
	// outside a repository, so the error is about the version.
	cfgPath := writeConfigFile(t, `
general:
  log_level: error
stamp:
  image_key: image
  image_base: ghcr.io/org/app
`)

	err := imageCmd().Run(context.Background(), []string{
		"image",
		"--config", cfgPath,
		"--repo", t.TempDir(),
	})
	if err == nil {
		t.Fatal("image should fail without a resolvable version")
	}
	if strings.Contains(err.Error(), "--base is required") {
		t.Errorf("base from config should satisfy the flag, got %v", err)
	}
}

func TestImageCmdWithoutRepository(t *testing.T) {
	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")

	err := imageCmd().Run(context.Background(), []string{
		"image",
		"--config", cfgPath,
		"--repo", t.TempDir(),
		"--base", "ghcr.io/org/app",
	})
	if err == nil {
		t.Fatal("image should fail without a resolvable version")
	}
}

func TestImageCmdDerivesReference(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	dir, run := initTestRepo(t)
	run("commit", "--allow-empty", "-m", "initial")
	run("tag", "v1.4.2")

	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")

	err := imageCmd().Run(context.Background(), []string{
		"image",
		"--config", cfgPath,
		"--repo", dir,
		"--base", "ghcr.io/org/app",
	})
	if err != nil {
		t.Fatalf("image failed: %v", err)
	}
}

func TestImageCmdInvalidBase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	dir, run := initTestRepo(t)
	run("commit", "--allow-empty", "-m", "initial")
	run("tag", "v1.4.2")

	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")

	// A base without a registry host must be rejected even though the
	// version resolved fine.
	err := imageCmd().Run(context.Background(), []string{
		"image",
		"--config", cfgPath,
		"--repo", dir,
		"--base", "org/app",
	})
	if err == nil {
		t.Fatal("image should reject a base without a registry host")
	}
}
