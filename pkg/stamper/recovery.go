/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package stamper

import (
	"fmt"
	"log/slog"
)

// Restore puts the pre-stamp values back. It is unconditional in the sense
// that it does not care whether the consuming build succeeded; it only
// cares whether a stamp is recorded. When nothing is stamped, Restore is a
// no-op, which makes it safe to defer and to repeat.
func (s *Stamper) Restore() error {
	_, found, err := s.readMarker()
	if err != nil {
		return err
	}
	if !found {
		s.logProgress("nothing stamped, nothing to restore")
		return nil
	}

	if err := s.restoreKey(s.cfg.VersionKey); err != nil {
		return err
	}
	if err := s.restoreKey(s.cfg.BuildNumberKey); err != nil {
		return err
	}
	if s.cfg.ImageKey != "" {
		if err := s.restoreKey(s.cfg.ImageKey); err != nil {
			return err
		}
	}

	// Dropping the marker commits the restore; until this point a crash
	// replays the whole rollback.
	if err := s.store.Delete(s.markerKey()); err != nil {
		return fmt.Errorf("failed to clear stamp owner: %w", err)
	}

	s.logProgress("restored pre-stamp values")
	return nil
}

// Recover rolls back a stamp left behind by a process that no longer runs.
// It reports whether a rollback happened. A backup owned by a live process
// fails with ErrStampInProgress so the caller does not destroy state under
// an active build.
func (s *Stamper) Recover() (bool, error) {
	ownerPID, found, err := s.readMarker()
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	if processAlive(ownerPID) {
		return false, fmt.Errorf("owner pid %d: %w", ownerPID, ErrStampInProgress)
	}

	if err := s.Restore(); err != nil {
		return false, err
	}
	slog.Info("recovered interrupted stamp", slog.Int("dead_owner", ownerPID))
	return true, nil
}

// restoreKey moves a backed-up value back over key. A missing backup means
// the key did not exist before the stamp, so the stamped value is removed.
func (s *Stamper) restoreKey(key string) error {
	prior, ok, err := s.store.Get(key + backupSuffix)
	if err != nil {
		return fmt.Errorf("failed to read backup of %s: %w", key, err)
	}
	if ok {
		if err := s.store.Set(key, prior); err != nil {
			return fmt.Errorf("failed to restore %s: %w", key, err)
		}
		if err := s.store.Delete(key + backupSuffix); err != nil {
			return fmt.Errorf("failed to drop backup of %s: %w", key, err)
		}
		return nil
	}
	if err := s.store.Delete(key); err != nil {
		return fmt.Errorf("failed to remove stamped %s: %w", key, err)
	}
	return nil
}
