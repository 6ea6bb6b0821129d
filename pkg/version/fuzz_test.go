package version

import (
	"strings"
	"testing"
)

// FuzzParseVersion performs fuzz testing on ParseVersion to find edge cases
func FuzzParseVersion(f *testing.F) {
	// Seed corpus with valid and edge case inputs
	f.Add("1.2.3")
	f.Add("v1.2.3")
	f.Add("V1.2.3")
	f.Add("0.0.0")
	f.Add("999.999.999")
	f.Add("1.4.2+9f3b21c")
	f.Add("1.2.3+a+b")
	f.Add("1.28.0+gke.1337000")
	f.Add("")
	f.Add("   ")
	f.Add(".")
	f.Add("..")
	f.Add("1.")
	f.Add(".1")
	f.Add("1..2")
	f.Add("1")
	f.Add("1.2")
	f.Add("1.2.3.4")
	f.Add("v")
	f.Add("vv1.2.3")
	f.Add("-1.2.3")
	f.Add("1.-2.3")
	f.Add("a.b.c")
	f.Add("1.2.3+")
	f.Add("+1.2.3")
	f.Add("   1.2.3")
	f.Add("1.2.3   ")
	f.Add("1. 2.3")
	f.Add("99999999999999999999.0.0")

	f.Fuzz(func(t *testing.T, input string) {
		// ParseVersion should never panic
		v, err := ParseVersion(input)

		// TryParseVersion must agree with ParseVersion
		tv, ok := TryParseVersion(input)
		if ok != (err == nil) {
			t.Errorf("TryParseVersion(%q) ok=%v disagrees with ParseVersion err=%v", input, ok, err)
		}

		if err != nil {
			// Failed parses must leave the zero value
			if !tv.Equals(Version{}) {
				t.Errorf("TryParseVersion(%q) returned non-zero version on failure: %+v", input, tv)
			}
			return
		}

		// All version components should be non-negative
		if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Errorf("ParseVersion(%q) returned negative component: %+v", input, v)
		}

		// Re-parsing the string should produce an equal version
		s := v.String()
		v2, err2 := ParseVersion(s)
		if err2 != nil {
			t.Errorf("Re-parsing %q (from %q) failed: %v", s, input, err2)
		} else if !v.Equals(v2) {
			t.Errorf("Round-trip mismatch for %q: %+v != %+v", input, v, v2)
		}

		// ReleaseString never carries a revision separator
		if strings.Contains(v.ReleaseString(), "+") {
			t.Errorf("ReleaseString for %q contains '+': %q", input, v.ReleaseString())
		}

		// Prefixed output must parse back to the same version
		vp, errp := ParseVersion(v.Prefixed())
		if errp != nil {
			t.Errorf("Re-parsing prefixed %q failed: %v", v.Prefixed(), errp)
		} else if !v.Equals(vp) {
			t.Errorf("Prefixed round-trip mismatch for %q: %+v != %+v", input, v, vp)
		}
	})
}
