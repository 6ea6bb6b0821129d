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
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"no accept header", "", DefaultAPIVersion},
		{"generic json", "application/json", DefaultAPIVersion},
		{"vendor v1", "application/vnd.nvidia.tagstamp.v1+json", "v1"},
		{"unsupported version", "application/vnd.nvidia.tagstamp.v2+json", DefaultAPIVersion},
		{"malformed version", "application/vnd.nvidia.tagstamp.vBAD+json", DefaultAPIVersion},
		{"vendor with charset", "application/vnd.nvidia.tagstamp.v1+json; charset=utf-8", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}

			if got := negotiateAPIVersion(req); got != tt.want {
				t.Errorf("expected version %q for accept %q, got %q", tt.want, tt.accept, got)
			}
		})
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"v1", true},
		{"v2", false},
		{"", false},
		{"1", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := isValidAPIVersion(tt.version); got != tt.want {
				t.Errorf("expected %v for %q, got %v", tt.want, tt.version, got)
			}
		})
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	rec := httptest.NewRecorder()

	SetAPIVersionHeader(rec, "v1")

	if got := rec.Header().Get(apiVersionHeader); got != "v1" {
		t.Errorf("expected %s header v1, got %q", apiVersionHeader, got)
	}
}
