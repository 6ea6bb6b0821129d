/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/tagstamp/pkg/version"
)

// Source reads version information from a single git repository directory.
// The zero value is not usable; construct instances with New.
type Source struct {
	dir     string
	gitPath string
	runner  Runner
}

// Option is a functional option for configuring Source instances.
type Option func(*Source)

// WithRunner returns an Option that replaces the subprocess runner.
// Primarily useful in tests.
func WithRunner(r Runner) Option {
	return func(s *Source) {
		s.runner = r
	}
}

// WithGitPath returns an Option that pins the git binary to an explicit path
// instead of resolving it from PATH on each invocation.
func WithGitPath(path string) Option {
	return func(s *Source) {
		s.gitPath = path
	}
}

// New creates a Source for the repository at dir with the provided options.
// An empty dir means the current working directory.
func New(dir string, opts ...Option) *Source {
	s := &Source{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	if s.dir == "" {
		s.dir = "."
	}
	if s.runner == nil {
		s.runner = &execRunner{path: s.gitPath}
	}
	return s
}

// Dir returns the repository directory this source reads from.
func (s *Source) Dir() string {
	return s.dir
}

// IsRepository reports whether the directory is inside a git work tree.
// It runs "git rev-parse --git-dir" and treats exit status zero as true.
// Any failure, including a missing git binary or a canceled context,
// yields false; this method never returns an error.
func (s *Source) IsRepository(ctx context.Context) bool {
	_, _, err := s.runner.Run(ctx, s.dir, "rev-parse", "--git-dir")
	return err == nil
}

// LatestTag returns the most recent tag reachable from HEAD, as printed by
// "git describe --tags --abbrev=0" with surrounding whitespace trimmed.
// On failure it returns a *ToolError carrying git's stderr, which is how
// git reports conditions such as a repository without any tags.
func (s *Source) LatestTag(ctx context.Context) (string, error) {
	return s.run(ctx, "describe", "--tags", "--abbrev=0")
}

// CommitID returns the full commit id of HEAD.
func (s *Source) CommitID(ctx context.Context) (string, error) {
	return s.run(ctx, "rev-parse", "HEAD")
}

// ShortCommitID returns the abbreviated commit id of HEAD, letting git pick
// the shortest unambiguous length.
func (s *Source) ShortCommitID(ctx context.Context) (string, error) {
	return s.run(ctx, "rev-parse", "--short", "HEAD")
}

// CurrentVersion derives the repository's version from its latest tag and
// current commit. The tag supplies the numeric triple; the short commit id
// becomes the revision. A revision embedded in the tag text is discarded:
// the commit the repository sits on now is authoritative, while the tag's
// embedded revision describes whatever commit the tag was cut from.
//
// Failures at any stage return a *UnavailableError wrapping the cause.
func (s *Source) CurrentVersion(ctx context.Context) (version.Version, error) {
	tag, err := s.LatestTag(ctx)
	if err != nil {
		return version.Version{}, &UnavailableError{Dir: s.dir, Err: err}
	}

	v, err := version.ParseVersion(tag)
	if err != nil {
		return version.Version{}, &UnavailableError{Dir: s.dir, Err: fmt.Errorf("tag %q: %w", tag, err)}
	}

	id, err := s.ShortCommitID(ctx)
	if err != nil {
		return version.Version{}, &UnavailableError{Dir: s.dir, Err: err}
	}

	slog.Debug("resolved version from git",
		slog.String("dir", s.dir),
		slog.String("tag", tag),
		slog.String("commit", id))

	return v.WithRevision(id), nil
}

// TryCurrentVersion derives the repository's version, reporting success with
// ok instead of an error. Repositories without tags, without commits, or
// with unparseable tags all yield ok=false.
func (s *Source) TryCurrentVersion(ctx context.Context) (version.Version, bool) {
	v, err := s.CurrentVersion(ctx)
	if err != nil {
		return version.Version{}, false
	}
	return v, true
}

// run executes a git command and returns its trimmed stdout, converting any
// failure into a *ToolError.
func (s *Source) run(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := s.runner.Run(ctx, s.dir, args...)
	if err != nil {
		return "", newToolError(args, stderr, err)
	}
	return strings.TrimSpace(stdout), nil
}
