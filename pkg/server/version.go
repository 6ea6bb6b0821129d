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

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not negotiate
	// a version.
	DefaultAPIVersion = "v1"

	apiVersionHeader      = "X-API-Version"
	vendorMediaTypePrefix = "application/vnd.nvidia.tagstamp.v"
)

// negotiateAPIVersion extracts the requested API version from the
// Accept header. Clients ask for a version with a vendor media type
// such as "application/vnd.nvidia.tagstamp.v1+json". A missing,
// malformed, or unsupported version falls back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	if strings.Contains(accept, vendorMediaTypePrefix) {
		for _, part := range strings.Split(accept, ".") {
			if !strings.HasPrefix(part, "v") {
				continue
			}
			// "v1+json" -> "v1"
			version := strings.Split(part, "+")[0]
			if isValidAPIVersion(version) {
				return version
			}
		}
	}

	return DefaultAPIVersion
}

// isValidAPIVersion reports whether the version is one this server can
// speak. Currently only v1.
func isValidAPIVersion(version string) bool {
	validVersions := map[string]bool{
		"v1": true,
	}
	return validVersions[version]
}

// SetAPIVersionHeader reports the negotiated API version to the client.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set(apiVersionHeader, version)
}
