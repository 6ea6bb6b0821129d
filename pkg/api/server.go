package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/tagstamp/pkg/config"
	"github.com/NVIDIA/tagstamp/pkg/defaults"
	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/git"
	"github.com/NVIDIA/tagstamp/pkg/logging"
	"github.com/NVIDIA/tagstamp/pkg/server"
)

const (
	name           = "tagstampd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/tagstamp/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve loads the configuration from the default locations and starts
// the version daemon, blocking until shutdown.
func Serve() error {
	cfg, err := config.LoadOrDefault("")
	if err != nil {
		return err
	}
	return ServeWithConfig(context.Background(), cfg)
}

// ServeWithConfig starts the version daemon with the given configuration
// and blocks until shutdown. A nil config uses the built-in defaults.
// The version cache is primed once at startup; a failed initial resolve
// is logged but does not prevent the daemon from serving.
func ServeWithConfig(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.General.LogLevel)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if !cfg.Server.Enabled {
		return apperrors.New(apperrors.ErrCodeUnavailable,
			"server is disabled in configuration (server.enabled)")
	}

	var opts []git.Option
	if cfg.General.GitPath != "" {
		opts = append(opts, git.WithGitPath(cfg.General.GitPath))
	}
	source := git.New(cfg.General.RepoDir, opts...)
	cache := NewCache(source)

	// Prime the cache so the first GET does not 404 in a healthy repo.
	resolveCtx, cancel := context.WithTimeout(ctx, defaults.StartupResolveTimeout)
	if _, err := cache.Refresh(resolveCtx); err != nil {
		slog.Warn("initial version resolve failed, serving empty cache",
			"dir", source.Dir(),
			"error", err,
		)
	}
	cancel()

	r := map[string]http.HandlerFunc{
		"/v1/version": cache.HandleVersion,
		"/v1/refresh": cache.HandleRefresh,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
		server.WithAddress(cfg.Server.Address),
		server.WithPort(cfg.Server.Port),
		server.WithRateLimit(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateLimitBurst),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
