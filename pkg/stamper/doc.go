/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package stamper writes resolved release versions into a project's version
// store for the duration of a build, and puts the original values back
// afterwards.
//
// A stamp replaces the store's version value with the current release string
// (never containing '+') and derives a numeric build number from the
// version triple. The prior values are backed up inside the same store
// together with the owning process id, so a build that dies between Stamp
// and Restore leaves enough state behind for the next run to notice and
// roll back before stamping again.
//
// Typical usage around a build step:
//
//	st := stamper.New(store, source, cfg)
//	res, err := st.Stamp(ctx)
//	if err != nil {
//	    return err
//	}
//	defer st.Restore()
//	// ... run the consuming build ...
//
// Restore is unconditional: it runs whether or not the consuming build
// succeeded, and calling it when nothing is stamped is a no-op.
package stamper
