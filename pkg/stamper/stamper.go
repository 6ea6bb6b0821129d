/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stamper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/NVIDIA/tagstamp/pkg/oci"
	"github.com/NVIDIA/tagstamp/pkg/store"
	"github.com/NVIDIA/tagstamp/pkg/version"
)

// Error conditions reported by stamping operations.
var (
	// ErrStampInProgress reports a backup held by a process that is still
	// running. Stamping over it would lose the original values.
	ErrStampInProgress = errors.New("a stamp by a live process already holds the backup")
)

const (
	// backupSuffix marks store keys holding pre-stamp values.
	backupSuffix = ".orig"
	// markerSuffix marks the store key holding the owning process id.
	markerSuffix = ".stamp-owner"
)

// Resolver yields the version to stamp. *git.Source satisfies this.
type Resolver interface {
	CurrentVersion(ctx context.Context) (version.Version, error)
}

// Config controls stamping behavior.
type Config struct {
	// Enabled controls whether Stamp does anything at all. When false,
	// Stamp reports success without touching the store.
	Enabled bool

	// Verbose raises progress logging from debug to info level.
	Verbose bool

	// FailOnError escalates version resolution failures into errors.
	// When false, a failed resolution logs a warning and the stamp is
	// skipped; store I/O failures are always errors regardless.
	FailOnError bool

	// VersionKey is the store key receiving the release string.
	// Defaults to "version".
	VersionKey string

	// BuildNumberKey is the store key receiving the numeric build number.
	// Defaults to "build_number".
	BuildNumberKey string

	// ImageKey is the store key receiving the derived image reference.
	// Empty disables image stamping.
	ImageKey string

	// ImageBase is the bare repository reference the version tag is
	// appended to, e.g. "ghcr.io/org/app". Required when ImageKey is set.
	ImageBase string
}

// Result describes what a Stamp call did.
type Result struct {
	// Stamped is false when stamping was disabled or the resolution
	// soft-failed.
	Stamped bool `json:"stamped" yaml:"stamped"`

	// Recovered reports that a leftover backup from a dead run was
	// rolled back before this stamp.
	Recovered bool `json:"recovered,omitempty" yaml:"recovered,omitempty"`

	// Reason explains a skipped stamp ("disabled" or the resolution error).
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Version is the resolved version, including its revision.
	Version version.Version `json:"version" yaml:"version"`

	// Release is the exact string written to the version key.
	Release string `json:"release,omitempty" yaml:"release,omitempty"`

	// BuildNumber is the value written to the build number key.
	BuildNumber int `json:"build_number,omitempty" yaml:"build_number,omitempty"`

	// Image is the derived reference written to the image key, when
	// image stamping is configured.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Prior is the version value that was in the store before the stamp,
	// when there was one.
	Prior string `json:"prior,omitempty" yaml:"prior,omitempty"`
}

// Stamper stamps resolved versions into a store and restores the
// originals afterwards.
type Stamper struct {
	store    store.Store
	resolver Resolver
	cfg      Config
	ownerPID int
}

// Option is a functional option for configuring Stamper instances.
type Option func(*Stamper)

// WithOwnerPID sets the process id recorded as the stamp's owner.
// The default is the current process; the CLI passes its parent so the
// backup survives for exactly as long as the invoking build does.
func WithOwnerPID(pid int) Option {
	return func(s *Stamper) {
		s.ownerPID = pid
	}
}

// New creates a Stamper over the given store and resolver.
func New(st store.Store, resolver Resolver, cfg Config, opts ...Option) *Stamper {
	if cfg.VersionKey == "" {
		cfg.VersionKey = "version"
	}
	if cfg.BuildNumberKey == "" {
		cfg.BuildNumberKey = "build_number"
	}
	s := &Stamper{
		store:    st,
		resolver: resolver,
		cfg:      cfg,
		ownerPID: os.Getpid(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildNumber derives a monotonic-per-release build number from the version
// triple: major*10000 + minor*100 + patch.
func BuildNumber(v version.Version) int {
	return v.Major*10000 + v.Minor*100 + v.Patch
}

// Stamp resolves the current version and writes its release string and
// build number into the store, backing up whatever was there first.
//
// A leftover backup owned by a process that no longer runs is rolled back
// before stamping. A backup owned by a live foreign process fails with
// ErrStampInProgress. Re-stamping under the same owner keeps the original
// backup, so the eventual Restore still yields the pre-build values.
func (s *Stamper) Stamp(ctx context.Context) (*Result, error) {
	if !s.cfg.Enabled {
		s.logProgress("stamping disabled, skipping")
		return &Result{Stamped: false, Reason: "disabled"}, nil
	}

	res := &Result{}

	ownerPID, markerFound, err := s.readMarker()
	if err != nil {
		return nil, err
	}
	restamp := false
	if markerFound {
		switch {
		case ownerPID == s.ownerPID:
			// Our own earlier stamp; keep its backup so Restore still
			// returns the true pre-build values.
			restamp = true
		case processAlive(ownerPID):
			return nil, fmt.Errorf("owner pid %d: %w", ownerPID, ErrStampInProgress)
		default:
			if err := s.Restore(); err != nil {
				return nil, fmt.Errorf("failed to roll back interrupted stamp: %w", err)
			}
			res.Recovered = true
			s.logProgress("rolled back interrupted stamp", slog.Int("dead_owner", ownerPID))
		}
	}

	v, err := s.resolver.CurrentVersion(ctx)
	if err != nil {
		if s.cfg.FailOnError {
			return nil, fmt.Errorf("version resolution failed: %w", err)
		}
		slog.Warn("version resolution failed, skipping stamp", "error", err)
		res.Stamped = false
		res.Reason = err.Error()
		return res, nil
	}

	res.Version = v
	res.Release = v.ReleaseString()
	res.BuildNumber = BuildNumber(v)

	if s.cfg.ImageKey != "" {
		// A bad image base is a configuration error, never softened by
		// FailOnError.
		ref, err := oci.TagReference(s.cfg.ImageBase, v)
		if err != nil {
			return nil, fmt.Errorf("failed to derive image reference: %w", err)
		}
		res.Image = ref
	}

	if !restamp {
		if err := s.backup(s.cfg.VersionKey, res); err != nil {
			return nil, err
		}
		if err := s.backup(s.cfg.BuildNumberKey, nil); err != nil {
			return nil, err
		}
		if s.cfg.ImageKey != "" {
			if err := s.backup(s.cfg.ImageKey, nil); err != nil {
				return nil, err
			}
		}
		if err := s.store.Set(s.markerKey(), strconv.Itoa(s.ownerPID)); err != nil {
			return nil, fmt.Errorf("failed to record stamp owner: %w", err)
		}
	}

	if err := s.store.Set(s.cfg.VersionKey, res.Release); err != nil {
		return nil, fmt.Errorf("failed to stamp %s: %w", s.cfg.VersionKey, err)
	}
	if err := s.store.Set(s.cfg.BuildNumberKey, strconv.Itoa(res.BuildNumber)); err != nil {
		return nil, fmt.Errorf("failed to stamp %s: %w", s.cfg.BuildNumberKey, err)
	}
	if s.cfg.ImageKey != "" {
		if err := s.store.Set(s.cfg.ImageKey, res.Image); err != nil {
			return nil, fmt.Errorf("failed to stamp %s: %w", s.cfg.ImageKey, err)
		}
	}

	res.Stamped = true
	s.logProgress("stamped version",
		slog.String("release", res.Release),
		slog.Int("build_number", res.BuildNumber),
		slog.String("revision", v.Revision))
	return res, nil
}

// backup copies the current value of key to its backup key. When res is
// given, the prior value is recorded on it for reporting.
func (s *Stamper) backup(key string, res *Result) error {
	prior, ok, err := s.store.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s for backup: %w", key, err)
	}
	if res != nil && ok {
		res.Prior = prior
	}
	if !ok {
		// No prior value: make sure no stale backup shadows that fact.
		if err := s.store.Delete(key + backupSuffix); err != nil {
			return fmt.Errorf("failed to clear stale backup of %s: %w", key, err)
		}
		return nil
	}
	if err := s.store.Set(key+backupSuffix, prior); err != nil {
		return fmt.Errorf("failed to back up %s: %w", key, err)
	}
	return nil
}

func (s *Stamper) markerKey() string {
	return s.cfg.VersionKey + markerSuffix
}

// readMarker returns the owner pid recorded by a previous stamp.
// A marker that cannot be parsed reads as owner pid 0, which no live
// process has, so recovery treats it as abandoned.
func (s *Stamper) readMarker() (int, bool, error) {
	val, ok, err := s.store.Get(s.markerKey())
	if err != nil {
		return 0, false, fmt.Errorf("failed to read stamp owner: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	pid, err := strconv.Atoi(val)
	if err != nil {
		return 0, true, nil
	}
	return pid, true, nil
}

// logProgress logs at info level when verbose, debug otherwise.
func (s *Stamper) logProgress(msg string, args ...any) {
	if s.cfg.Verbose {
		slog.Info(msg, args...)
		return
	}
	slog.Debug(msg, args...)
}
