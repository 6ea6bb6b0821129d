/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ToolError reports a git invocation that could not run or exited non-zero.
// It preserves the arguments, captured stderr, and exit code so callers can
// log or display git's own diagnostics.
type ToolError struct {
	// Args are the git arguments, without the binary name.
	Args []string

	// Stderr is the captured standard error output, possibly empty.
	Stderr string

	// ExitCode is the subprocess exit code, or -1 when the process
	// could not be started at all.
	ExitCode int

	// Err is the underlying cause from the exec layer.
	Err error
}

// Error implements the error interface. The message includes the captured
// stderr when present, since that is where git explains itself.
func (e *ToolError) Error() string {
	var b strings.Builder
	b.WriteString("git ")
	b.WriteString(strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		fmt.Fprintf(&b, " exited with status %d", e.ExitCode)
	} else {
		b.WriteString(" failed to run")
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// newToolError classifies an exec failure, extracting the exit code when the
// process actually ran.
func newToolError(args []string, stderr string, err error) *ToolError {
	te := &ToolError{
		Args:     args,
		Stderr:   stderr,
		ExitCode: -1,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		te.ExitCode = exitErr.ExitCode()
	}
	return te
}

// UnavailableError reports that no usable version could be derived from the
// repository. It wraps the stage that failed: tag resolution, tag parsing,
// or commit id resolution.
type UnavailableError struct {
	// Dir is the repository directory the lookup ran against.
	Dir string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("version unavailable in %s: %v", e.Dir, e.Err)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *UnavailableError) Unwrap() error {
	return e.Err
}
