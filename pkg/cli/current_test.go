/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	ver "github.com/NVIDIA/tagstamp/pkg/version"
)

func TestNewVersionReport(t *testing.T) {
	v := ver.NewVersion(1, 4, 2).WithRevision("9f3b21c")
	rep := newVersionReport(v, "/src/app")

	if rep.Version != "1.4.2+9f3b21c" {
		t.Errorf("Version = %q, want 1.4.2+9f3b21c", rep.Version)
	}
	if rep.Release != "1.4.2" {
		t.Errorf("Release = %q, want 1.4.2", rep.Release)
	}
	if rep.Prefixed != "v1.4.2+9f3b21c" {
		t.Errorf("Prefixed = %q, want v1.4.2+9f3b21c", rep.Prefixed)
	}
	if rep.BuildNumber != 10402 {
		t.Errorf("BuildNumber = %d, want 10402", rep.BuildNumber)
	}
	if rep.Commit != "9f3b21c" {
		t.Errorf("Commit = %q, want 9f3b21c", rep.Commit)
	}
	if rep.Repository != "/src/app" {
		t.Errorf("Repository = %q, want /src/app", rep.Repository)
	}
}

func TestCurrentCmdTolerantWithoutRepository(t *testing.T) {
	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")
	out := filepath.Join(t.TempDir(), "version.yaml")

	err := currentCmd().Run(context.Background(), []string{
		"current",
		"--config", cfgPath,
		"--repo", t.TempDir(),
		"--output", out,
	})
	if err != nil {
		t.Fatalf("current without --strict should not fail, got %v", err)
	}

	// No resolution means no output at all.
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat err = %v", err)
	}
}

func TestCurrentCmdStrictWithoutRepository(t *testing.T) {
	cfgPath := writeConfigFile(t, "general:\n  log_level: error\n")

	err := currentCmd().Run(context.Background(), []string{
		"current",
		"--config", cfgPath,
		"--repo", t.TempDir(),
		"--strict",
	})
	if err == nil {
		t.Fatal("current --strict should fail without a repository")
	}
}

func TestCurrentCmdResolvesVersion(t *testing.T) {
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
	out := filepath.Join(t.TempDir(), "version.json")

	err := currentCmd().Run(context.Background(), []string{
		"current",
		"--config", cfgPath,
		"--repo", dir,
		"--format", "json",
		"--output", out,
	})
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var rep versionReport
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}

	if rep.Release != "1.4.2" {
		t.Errorf("Release = %q, want 1.4.2", rep.Release)
	}
	if !strings.HasPrefix(rep.Version, "1.4.2+") {
		t.Errorf("Version = %q, want 1.4.2+<commit>", rep.Version)
	}
	if rep.BuildNumber != 10402 {
		t.Errorf("BuildNumber = %d, want 10402", rep.BuildNumber)
	}
	if rep.Commit == "" {
		t.Error("Commit should not be empty")
	}
	if rep.Repository != dir {
		t.Errorf("Repository = %q, want %q", rep.Repository, dir)
	}
}

// Integration coverage runs the real git binary against throwaway
// repositories. Skipped in short mode or when git is not installed.

func initTestRepo(t *testing.T) (string, func(args ...string) string) {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
		return strings.TrimSpace(string(out))
	}
	run("init", "-q")
	run("config", "user.email", "tagstamp-test@example.com")
	run("config", "user.name", "tagstamp test")
	run("config", "commit.gpgsign", "false")
	run("config", "tag.gpgsign", "false")
	return dir, run
}
