package api

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/tagstamp/pkg/defaults"
	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/git"
	"github.com/NVIDIA/tagstamp/pkg/serializer"
	"github.com/NVIDIA/tagstamp/pkg/server"
	"github.com/NVIDIA/tagstamp/pkg/stamper"
)

const (
	refreshOutcomeSuccess = "success"
	refreshOutcomeError   = "error"
)

var (
	refreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tagstamp_version_refreshes_total",
			Help: "Total number of version refresh attempts by outcome.",
		},
		[]string{"outcome"},
	)

	versionInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tagstamp_version_info",
			Help: "Currently cached repository version, exposed through labels.",
		},
		[]string{"version", "revision"},
	)
)

// Info is the version payload served by the API. It is a snapshot of the
// last successful (or failed) resolution against the repository; serving
// it never touches git.
type Info struct {
	// Repository is the working directory the version was resolved from.
	Repository string `json:"repository"`

	// Version is the canonical form, e.g. "1.4.2+9f3b21c".
	Version string `json:"version,omitempty"`

	// Release is the bare triple, e.g. "1.4.2".
	Release string `json:"release,omitempty"`

	// Prefixed is the tag-style form, e.g. "v1.4.2+9f3b21c".
	Prefixed string `json:"prefixed,omitempty"`

	// BuildNumber is the monotonic encoding of the release triple.
	BuildNumber int `json:"build_number,omitempty"`

	// Commit is the revision the version was resolved at.
	Commit string `json:"commit,omitempty"`

	// FetchedAt records when the resolution ran. Zero means the cache
	// was never primed.
	FetchedAt time.Time `json:"fetched_at"`

	// Error carries the failure text when the last resolution failed.
	Error string `json:"error,omitempty"`
}

// Cache holds the most recent version resolution for a repository.
// Reads are served from memory; only Refresh runs git underneath.
type Cache struct {
	source *git.Source

	mu   sync.RWMutex
	info Info
}

// NewCache returns a cache bound to the given version source.
// The cache starts empty; call Refresh to prime it.
func NewCache(source *git.Source) *Cache {
	return &Cache{source: source}
}

// Refresh resolves the current version from the repository and replaces
// the cached snapshot. The snapshot is updated even when resolution
// fails, so clients can observe both the failure and when it happened.
func (c *Cache) Refresh(ctx context.Context) (Info, error) {
	info := Info{
		Repository: c.source.Dir(),
		FetchedAt:  time.Now().UTC(),
	}

	v, err := c.source.CurrentVersion(ctx)
	if err != nil {
		info.Error = err.Error()
		c.mu.Lock()
		c.info = info
		c.mu.Unlock()

		refreshesTotal.WithLabelValues(refreshOutcomeError).Inc()
		slog.Warn("version refresh failed",
			"dir", c.source.Dir(),
			"error", err,
		)
		return info, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			"version resolution failed", err, map[string]any{
				"dir": c.source.Dir(),
			})
	}

	info.Version = v.String()
	info.Release = v.ReleaseString()
	info.Prefixed = v.Prefixed()
	info.BuildNumber = stamper.BuildNumber(v)
	info.Commit = v.Revision

	c.mu.Lock()
	c.info = info
	c.mu.Unlock()

	refreshesTotal.WithLabelValues(refreshOutcomeSuccess).Inc()
	versionInfo.Reset()
	versionInfo.WithLabelValues(info.Release, info.Commit).Set(1)

	slog.Info("version refreshed",
		"version", info.Version,
		"build_number", info.BuildNumber,
	)
	return info, nil
}

// Current returns the cached snapshot without touching the repository.
func (c *Cache) Current() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.info
}

// HandleVersion serves the cached version snapshot.
// It never triggers a resolution; use HandleRefresh for that.
func (c *Cache) HandleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"GET"},
			})
		return
	}

	info := c.Current()
	if info.FetchedAt.IsZero() {
		server.WriteError(w, r, http.StatusNotFound, apperrors.ErrCodeNotFound,
			"No version resolved yet", false, map[string]any{
				"hint": "POST /v1/refresh to resolve the repository version",
			})
		return
	}

	serializer.RespondJSON(w, http.StatusOK, info)
}

// HandleRefresh re-resolves the repository version and serves the new
// snapshot. This is the only request path that runs git.
func (c *Cache) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{"POST"},
			})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.RefreshHandlerTimeout)
	defer cancel()

	info, err := c.Refresh(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to refresh version", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, info)
}
