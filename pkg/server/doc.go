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

// Package server provides the reusable HTTP serving layer for the
// tagstamp daemon. Applications register their handlers by path; the
// server contributes health and readiness probes, Prometheus metrics,
// a standard middleware chain, and graceful shutdown.
//
// # Usage
//
// Minimal startup with application routes:
//
//	s := server.New(
//	    server.WithName("tagstampd"),
//	    server.WithVersion("1.0.0"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/version": versionHandler,
//	    }),
//	)
//
//	if err := s.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks until an interrupt or SIGTERM arrives, then drains
// in-flight requests within the configured shutdown timeout.
//
// # Endpoints
//
// Registered application handlers are wrapped in the middleware chain.
// The server adds three system endpoints that bypass rate limiting:
//
//   - GET /health  - liveness probe, always 200 while the process runs
//   - GET /ready   - readiness probe, 503 during startup and drain
//   - GET /metrics - Prometheus metrics
//
// When no root handler is registered, GET / serves a JSON index of the
// available routes.
//
// # Middleware
//
// Every application handler runs behind, in order: metrics collection,
// API version negotiation, request-id tracking, panic recovery, rate
// limiting, and request logging.
//
// Request ids arrive in the X-Request-Id header (UUID format) or are
// generated, and are echoed back on every response including errors.
// Rate limiting uses a token bucket (golang.org/x/time/rate) shared by
// all clients; rejected requests get a 429 with a Retry-After header
// and X-RateLimit-* headers describe the bucket on accepted ones.
//
// # Configuration
//
// NewConfig fills defaults for every field. The PORT and
// SHUTDOWN_TIMEOUT_SECONDS environment variables override their
// defaults, and functional options passed to New override both.
//
// # Errors
//
// All error responses share one JSON shape, aligned with the
// structured codes from pkg/errors:
//
//	{
//	  "code": "RATE_LIMIT_EXCEEDED",
//	  "message": "rate limit exceeded",
//	  "details": {"limit": 100, "burst": 200},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-06-01T12:00:00Z",
//	  "retryable": true
//	}
package server
