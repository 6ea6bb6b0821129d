package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/tagstamp/pkg/version"
)

type fakeResult struct {
	stdout string
	stderr string
	err    error
}

// fakeRunner scripts git invocations keyed by their joined arguments.
type fakeRunner struct {
	results map[string]fakeResult
	calls   []string
	dirs    []string
}

func (f *fakeRunner) Run(_ context.Context, dir string, args ...string) (string, string, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	f.dirs = append(f.dirs, dir)
	r, ok := f.results[key]
	if !ok {
		return "", "", fmt.Errorf("unexpected git invocation: %s", key)
	}
	return r.stdout, r.stderr, r.err
}

func TestNewDefaults(t *testing.T) {
	src := New("")
	assert.Equal(t, ".", src.Dir())

	src = New("/src/repo")
	assert.Equal(t, "/src/repo", src.Dir())
}

func TestIsRepository(t *testing.T) {
	tests := []struct {
		name     string
		result   fakeResult
		expected bool
	}{
		{
			name:     "work tree",
			result:   fakeResult{stdout: ".git\n"},
			expected: true,
		},
		{
			name:     "not a repository",
			result:   fakeResult{stderr: "fatal: not a git repository\n", err: errors.New("exit status 128")},
			expected: false,
		},
		{
			name:     "git missing",
			result:   fakeResult{err: errors.New(`exec: "git": executable file not found in $PATH`)},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: map[string]fakeResult{
				"rev-parse --git-dir": tt.result,
			}}
			src := New("/src/repo", WithRunner(runner))
			assert.Equal(t, tt.expected, src.IsRepository(context.Background()))
		})
	}
}

func TestLatestTag(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"describe --tags --abbrev=0": {stdout: "v1.2.3\n"},
	}}
	src := New("/src/repo", WithRunner(runner))

	tag, err := src.LatestTag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", tag)
	assert.Equal(t, []string{"describe --tags --abbrev=0"}, runner.calls)
	assert.Equal(t, []string{"/src/repo"}, runner.dirs)
}

func TestLatestTagNoTags(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"describe --tags --abbrev=0": {
			stderr: "fatal: No names found, cannot describe anything.\n",
			err:    errors.New("exit status 128"),
		},
	}}
	src := New("/src/repo", WithRunner(runner))

	_, err := src.LatestTag(context.Background())
	require.Error(t, err)

	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, []string{"describe", "--tags", "--abbrev=0"}, toolErr.Args)
	assert.Contains(t, toolErr.Stderr, "No names found")
	assert.Contains(t, err.Error(), "No names found")
}

func TestCommitID(t *testing.T) {
	runner := &fakeRunner{results: map[string]fakeResult{
		"rev-parse HEAD":         {stdout: "9f3b21c4a1d2e3f4a5b6c7d8e9f0a1b2c3d4e5f6\n"},
		"rev-parse --short HEAD": {stdout: "9f3b21c\n"},
	}}
	src := New("/src/repo", WithRunner(runner))
	ctx := context.Background()

	full, err := src.CommitID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9f3b21c4a1d2e3f4a5b6c7d8e9f0a1b2c3d4e5f6", full)

	short, err := src.ShortCommitID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9f3b21c", short)
	assert.True(t, strings.HasPrefix(full, short))
}

func TestCurrentVersion(t *testing.T) {
	tests := []struct {
		name     string
		results  map[string]fakeResult
		expected version.Version
	}{
		{
			name: "plain tag",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {stdout: "v1.2.3\n"},
				"rev-parse --short HEAD":     {stdout: "9f3b21c\n"},
			},
			expected: version.Version{Major: 1, Minor: 2, Patch: 3, Revision: "9f3b21c"},
		},
		{
			name: "unprefixed tag",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {stdout: "0.9.0\n"},
				"rev-parse --short HEAD":     {stdout: "abc1234\n"},
			},
			expected: version.Version{Major: 0, Minor: 9, Patch: 0, Revision: "abc1234"},
		},
		{
			name: "stale revision in tag is overwritten by live commit",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {stdout: "v1.4.2+0ldc0mm1t\n"},
				"rev-parse --short HEAD":     {stdout: "9f3b21c\n"},
			},
			expected: version.Version{Major: 1, Minor: 4, Patch: 2, Revision: "9f3b21c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New("/src/repo", WithRunner(&fakeRunner{results: tt.results}))
			v, err := src.CurrentVersion(context.Background())
			require.NoError(t, err)
			assert.True(t, v.Equals(tt.expected), "got %+v, want %+v", v, tt.expected)
		})
	}
}

func TestCurrentVersionFailures(t *testing.T) {
	tests := []struct {
		name    string
		results map[string]fakeResult
		cause   error
	}{
		{
			name: "no tags",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {
					stderr: "fatal: No names found, cannot describe anything.\n",
					err:    errors.New("exit status 128"),
				},
			},
		},
		{
			name: "unparseable tag",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {stdout: "nightly-build\n"},
			},
			cause: version.ErrMalformedVersion,
		},
		{
			name: "commit id lookup fails",
			results: map[string]fakeResult{
				"describe --tags --abbrev=0": {stdout: "v1.2.3\n"},
				"rev-parse --short HEAD": {
					stderr: "fatal: ambiguous argument 'HEAD'\n",
					err:    errors.New("exit status 128"),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New("/src/repo", WithRunner(&fakeRunner{results: tt.results}))
			_, err := src.CurrentVersion(context.Background())
			require.Error(t, err)

			var unavailable *UnavailableError
			require.ErrorAs(t, err, &unavailable)
			assert.Equal(t, "/src/repo", unavailable.Dir)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestTryCurrentVersion(t *testing.T) {
	src := New("/src/repo", WithRunner(&fakeRunner{results: map[string]fakeResult{
		"describe --tags --abbrev=0": {stdout: "v2.0.1\n"},
		"rev-parse --short HEAD":     {stdout: "abc1234\n"},
	}}))

	v, ok := src.TryCurrentVersion(context.Background())
	require.True(t, ok)
	assert.Equal(t, "2.0.1+abc1234", v.String())

	src = New("/src/repo", WithRunner(&fakeRunner{results: map[string]fakeResult{}}))
	v, ok = src.TryCurrentVersion(context.Background())
	assert.False(t, ok)
	assert.True(t, v.Equals(version.Version{}))
}

// Integration coverage below runs the real git binary against throwaway
// repositories. Skipped in short mode or when git is not installed.

func initTestRepo(t *testing.T) (string, func(args ...string) string) {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) string {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		if err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
		return strings.TrimSpace(string(out))
	}
	run("init", "-q")
	run("config", "user.email", "tagstamp-test@example.com")
	run("config", "user.name", "tagstamp test")
	run("config", "commit.gpgsign", "false")
	run("config", "tag.gpgsign", "false")
	return dir, run
}

func TestSourceAgainstRealRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	dir, run := initTestRepo(t)
	run("commit", "--allow-empty", "-m", "initial")
	run("tag", "v1.2.3")

	ctx := context.Background()
	src := New(dir)

	assert.True(t, src.IsRepository(ctx))

	tag, err := src.LatestTag(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", tag)

	short, err := src.ShortCommitID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, short)

	full, err := src.CommitID(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(full, short))
	assert.Greater(t, len(full), len(short))

	v, err := src.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3+"+short, v.String())
	assert.Equal(t, "1.2.3", v.ReleaseString())
}

func TestSourceAgainstRepositoryWithoutTags(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	dir, run := initTestRepo(t)
	run("commit", "--allow-empty", "-m", "initial")

	ctx := context.Background()
	src := New(dir)

	assert.True(t, src.IsRepository(ctx))

	_, err := src.LatestTag(ctx)
	require.Error(t, err)
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.NotEmpty(t, toolErr.Stderr)
	assert.NotEqual(t, 0, toolErr.ExitCode)

	_, err = src.CurrentVersion(ctx)
	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)

	_, ok := src.TryCurrentVersion(ctx)
	assert.False(t, ok)
}

func TestSourceAgainstNonRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	src := New(t.TempDir())
	ctx := context.Background()

	assert.False(t, src.IsRepository(ctx))

	_, err := src.LatestTag(ctx)
	require.Error(t, err)

	_, ok := src.TryCurrentVersion(ctx)
	assert.False(t, ok)
}

func TestSourceWithCanceledContext(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on this system")
	}

	dir, run := initTestRepo(t)
	run("commit", "--allow-empty", "-m", "initial")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := New(dir)
	assert.False(t, src.IsRepository(ctx))

	_, err := src.LatestTag(ctx)
	require.Error(t, err)
}
