/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package store provides keyed storage for stamped version values.
//
// The canonical implementation is FileStore, a flat YAML map on disk that
// build tooling and humans can both read. MemStore backs tests and callers
// that do not need persistence.
package store

// Store provides keyed access to stamped version values.
// Implementations must tolerate keys that do not exist: Get and Has report
// absence rather than failing, and Delete of an absent key is a no-op.
type Store interface {
	// Get returns the value for key, with ok reporting presence.
	Get(key string) (value string, ok bool, err error)

	// Set writes the value for key, creating it if absent.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Has reports whether key is present.
	Has(key string) (bool, error)
}
