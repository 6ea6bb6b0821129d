/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package git resolves release versions from a repository by invoking the
// git binary as a subprocess. It reads the most recent reachable tag and the
// current commit id, and combines them into a version.Version whose revision
// is always the live commit, never whatever was embedded in the tag text.
//
// Example usage:
//
//	src := git.New("/src/myrepo")
//	if !src.IsRepository(ctx) {
//	    return fmt.Errorf("not a git repository")
//	}
//	v, err := src.CurrentVersion(ctx)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(v.String()) // e.g. "1.4.2+9f3b21c"
//
// All operations accept a context.Context; wrap the context with a deadline
// (see pkg/defaults) to bound subprocess execution time. Failures carry the
// subprocess stderr in a *ToolError so callers can surface git's own
// diagnostics.
package git
