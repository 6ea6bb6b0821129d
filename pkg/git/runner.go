/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes a git command in a directory and returns its standard
// output and standard error. Implementations of this interface let tests
// substitute deterministic results for real subprocess execution.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout, stderr string, err error)
}

// execRunner invokes the git binary directly.
type execRunner struct {
	// path is an explicit git binary path; empty means resolve from PATH.
	path string
}

// Run executes git with the given arguments in dir, honoring ctx for
// cancellation and deadlines.
func (r *execRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	path := r.path
	if path == "" {
		p, err := exec.LookPath("git")
		if err != nil {
			return "", "", fmt.Errorf("git not found in PATH: %w", err)
		}
		path = p
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	// Keep git strictly non-interactive: never prompt for credentials,
	// never spawn a pager.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_PAGER=cat")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
