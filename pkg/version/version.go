// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion     = errors.New("version string is empty")
	ErrMalformedVersion = errors.New("malformed version string")
)

// Version represents a release version with Major, Minor, and Patch components
// plus an optional opaque Revision carrying build metadata such as a short
// commit id (e.g. "1.4.2+9f3b21c"). The Revision participates in equality and
// round-trips through String, but carries no ordering semantics.
type Version struct {
	Major int `json:"major,omitempty" yaml:"major,omitempty"`
	Minor int `json:"minor,omitempty" yaml:"minor,omitempty"`
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`

	// Revision stores the opaque build metadata after '+', e.g. "9f3b21c".
	// Empty means no revision.
	Revision string `json:"revision,omitempty" yaml:"revision,omitempty"`
}

// NewVersion creates a new Version with the specified major, minor, and patch
// values and no revision. Use WithRevision to attach build metadata, or
// ParseVersion for parsing version strings.
func NewVersion(major, minor, patch int) Version {
	return Version{
		Major: major,
		Minor: minor,
		Patch: patch,
	}
}

// WithRevision returns a copy of v with the given revision. An empty revision
// clears any existing one, so the result prints without a '+' segment.
func (v Version) WithRevision(revision string) Version {
	v.Revision = revision
	return v
}

// String returns the canonical string representation of the Version:
// "Major.Minor.Patch" followed by "+Revision" when a revision is present.
// The result always parses back to an equal Version via ParseVersion.
func (v Version) String() string {
	if v.Revision != "" {
		return fmt.Sprintf("%d.%d.%d+%s", v.Major, v.Minor, v.Patch, v.Revision)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ReleaseString returns the numeric triple "Major.Minor.Patch" with any
// revision omitted. The result never contains a '+' character, which makes it
// safe for build systems that reserve '+' in version fields.
func (v Version) ReleaseString() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Prefixed returns the canonical string with a leading "v", matching the
// common git tag convention (e.g. "v1.4.2+9f3b21c").
func (v Version) Prefixed() string {
	return "v" + v.String()
}

// ParseVersion parses a version string into a Version struct.
// The accepted shape is "MAJOR.MINOR.PATCH" with an optional "+REVISION"
// suffix, where each component is a non-negative base-10 integer and the
// revision is any non-empty text. A single leading "v" or "V" is stripped
// before matching, so "v1.2.3" and "1.2.3" parse identically.
//
// Empty or all-whitespace input fails with ErrEmptyVersion. Anything else
// that does not match the shape, including components that overflow int,
// fails with an error wrapping ErrMalformedVersion.
func ParseVersion(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return Version{}, ErrEmptyVersion
	}

	// Strip a single leading 'v' or 'V'. Exactly one: "vv1.2.3" is malformed.
	in := s
	if s[0] == 'v' || s[0] == 'V' {
		s = s[1:]
	}

	// The revision is everything after the first '+', taken verbatim. It may
	// itself contain '+' or '.', so cut before splitting the numeric triple.
	core, revision, found := strings.Cut(s, "+")
	if found && revision == "" {
		return Version{}, fmt.Errorf("%w: empty revision in %q", ErrMalformedVersion, in)
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: expected MAJOR.MINOR.PATCH, got %q", ErrMalformedVersion, in)
	}

	var nums [3]int
	for i, part := range parts {
		if !isDigits(part) {
			return Version{}, fmt.Errorf("%w: component %q is not numeric", ErrMalformedVersion, part)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			// All-digit input that still fails Atoi is out of int range.
			return Version{}, fmt.Errorf("%w: component %q out of range", ErrMalformedVersion, part)
		}
		nums[i] = num
	}

	return Version{
		Major:    nums[0],
		Minor:    nums[1],
		Patch:    nums[2],
		Revision: revision,
	}, nil
}

// TryParseVersion parses a version string, reporting success with ok instead
// of an error. It never fails: invalid input returns the zero Version and
// ok=false. Use it where malformed input is an expected, non-exceptional case.
func TryParseVersion(s string) (Version, bool) {
	v, err := ParseVersion(s)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// MustParseVersion parses a version string and panics if parsing fails.
// This function is useful for initializing package-level constants or test data
// where the version string is known to be valid at compile time.
//
// Only use this for hardcoded strings or in tests. For user input or runtime data,
// always use ParseVersion and handle errors explicitly.
//
// Example usage:
//
//	v := version.MustParseVersion("1.33.0") // OK in init() or tests
//	v, err := version.ParseVersion(userInput) // Required for runtime data
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Equals returns true if v exactly equals other: all numeric components and
// the revision must match. Versions differing only in revision are not equal.
func (v Version) Equals(other Version) bool {
	return v.Major == other.Major &&
		v.Minor == other.Minor &&
		v.Patch == other.Patch &&
		v.Revision == other.Revision
}

// isDigits reports whether s is non-empty and consists only of ASCII digits.
// Atoi alone is too permissive here: it accepts leading '+' and '-'.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
