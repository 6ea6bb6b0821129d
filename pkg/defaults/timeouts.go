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

package defaults

import "time"

// Git timeouts for subprocess invocations.
const (
	// GitCommandTimeout is the default timeout for a single git invocation.
	// Callers should respect parent context deadlines when shorter.
	GitCommandTimeout = 10 * time.Second

	// GitProbeTimeout is the timeout for the cheap repository probe
	// (rev-parse --git-dir), which should return almost immediately.
	GitProbeTimeout = 5 * time.Second
)

// Daemon timeouts for version resolution.
const (
	// StartupResolveTimeout bounds the initial version resolution when
	// the daemon boots and primes its cache.
	StartupResolveTimeout = 10 * time.Second

	// RefreshHandlerTimeout is the timeout for refresh requests.
	// Longer than the startup resolve because a refresh is client-driven
	// and runs git underneath.
	RefreshHandlerTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Registry timeouts for OCI artifact distribution.
const (
	// RegistryPushTimeout is the total timeout for pushing a version
	// artifact to a registry, including all layer uploads.
	RegistryPushTimeout = 5 * time.Minute

	// HTTPClientTimeout is the default total timeout for registry HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICommandTimeout is the default timeout for version resolution commands.
	CLICommandTimeout = 1 * time.Minute

	// CLIPublishTimeout is the timeout for publish operations, which upload
	// artifacts to remote registries.
	CLIPublishTimeout = 5 * time.Minute
)
