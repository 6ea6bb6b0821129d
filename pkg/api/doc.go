// Package api provides the HTTP API layer for the tagstamp version daemon.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with the version routes. It holds the version cache: the
// daemon resolves the repository version once at startup, and afterwards only
// an explicit refresh request runs git again. Reads are always served from
// the cached snapshot.
//
// # Usage
//
// To start the version daemon:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/tagstamp/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Resolving the repository version through pkg/git and caching it
//   - Setting up route handlers (/v1/version, /v1/refresh)
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /v1/version  - Serve the cached version snapshot (never runs git)
//   - POST /v1/refresh - Re-resolve the repository version and serve it
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Version Payload
//
// Both endpoints return the same Info payload:
//
//	{
//	  "repository": "/src/myrepo",
//	  "version": "1.4.2+9f3b21c",
//	  "release": "1.4.2",
//	  "prefixed": "v1.4.2+9f3b21c",
//	  "build_number": 10402,
//	  "commit": "9f3b21c",
//	  "fetched_at": "2025-06-01T12:00:00Z"
//	}
//
// When the last resolution failed, the payload carries an "error" field
// instead of the version fields, together with the fetched_at timestamp of
// the failed attempt. GET /v1/version returns 404 until the cache has been
// primed at least once.
//
// # Configuration
//
// The daemon reads its configuration file from the standard search paths
// (see pkg/config). The server port can also be set via environment:
//   - PORT: HTTP server port (default: 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown window
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/tagstamp/pkg/api.version=1.0.0'"
package api
