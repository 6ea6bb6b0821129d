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
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want int
	}{
		{apperrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{apperrors.ErrCodeNotFound, http.StatusNotFound},
		{apperrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{apperrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{apperrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{apperrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCodeExternalTool, http.StatusInternalServerError},
		{apperrors.ErrCodeInternal, http.StatusInternalServerError},
		{apperrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Errorf("expected status %d for %s, got %d", tt.want, tt.code, got)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		code apperrors.ErrorCode
		want bool
	}{
		{apperrors.ErrCodeTimeout, true},
		{apperrors.ErrCodeUnavailable, true},
		{apperrors.ErrCodeRateLimitExceeded, true},
		{apperrors.ErrCodeExternalTool, true},
		{apperrors.ErrCodeInternal, true},
		{apperrors.ErrCodeInvalidRequest, false},
		{apperrors.ErrCodeNotFound, false},
		{apperrors.ErrCodeMethodNotAllowed, false},
		{apperrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Errorf("expected retryable=%v for %s, got %v", tt.want, tt.code, got)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("merges and overwrites", func(t *testing.T) {
		a := map[string]any{"keep": "a", "shared": "a"}
		b := map[string]any{"shared": "b", "extra": "b"}

		got := mergeDetails(a, b)

		if got["keep"] != "a" {
			t.Errorf("expected keep=a, got %v", got["keep"])
		}
		if got["shared"] != "b" {
			t.Errorf("expected second map to overwrite, got %v", got["shared"])
		}
		if got["extra"] != "b" {
			t.Errorf("expected extra=b, got %v", got["extra"])
		}
	})
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), contextKeyRequestID, "req-123")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusNotFound, apperrors.ErrCodeNotFound,
		"resource not found", false, map[string]any{"path": "/test"})

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Code != string(apperrors.ErrCodeNotFound) {
		t.Errorf("expected code NOT_FOUND, got %s", resp.Code)
	}
	if resp.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Errorf("expected request ID req-123, got %s", resp.RequestID)
	}
	if resp.Retryable {
		t.Error("expected retryable=false")
	}
	if resp.Details["path"] != "/test" {
		t.Errorf("expected path detail, got %v", resp.Details)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestWriteErrorGeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	WriteError(rec, req, http.StatusInternalServerError, apperrors.ErrCodeInternal,
		"something broke", true, nil)

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.RequestID == "" {
		t.Fatal("expected generated request ID")
	}
	if _, err := uuid.Parse(resp.RequestID); err != nil {
		t.Errorf("expected valid UUID request ID, got %s", resp.RequestID)
	}
}

func TestWriteErrorFromErr_StructuredError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	serr := apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
		"service unavailable", errors.New("db is down"),
		map[string]any{"component": "db"})

	WriteErrorFromErr(rec, req, serr, "fallback message", map[string]any{"extra": "yes"})

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Code != string(apperrors.ErrCodeUnavailable) {
		t.Errorf("expected code SERVICE_UNAVAILABLE, got %s", resp.Code)
	}
	if resp.Message != "service unavailable" {
		t.Errorf("expected structured error message, got %s", resp.Message)
	}
	if !resp.Retryable {
		t.Error("expected retryable=true for SERVICE_UNAVAILABLE")
	}
	if resp.Details["component"] != "db" {
		t.Errorf("expected component detail from error context, got %v", resp.Details)
	}
	if resp.Details["extra"] != "yes" {
		t.Errorf("expected extra detail from caller, got %v", resp.Details)
	}
	if resp.Details["error"] != "db is down" {
		t.Errorf("expected cause in details, got %v", resp.Details)
	}
}

func TestWriteErrorFromErr_PlainError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	WriteErrorFromErr(rec, req, errors.New("boom"), "operation failed",
		map[string]any{"x": "y"})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Code != string(apperrors.ErrCodeInternal) {
		t.Errorf("expected code INTERNAL, got %s", resp.Code)
	}
	if resp.Message != "operation failed" {
		t.Errorf("expected fallback message, got %s", resp.Message)
	}
	if !resp.Retryable {
		t.Error("expected retryable=true for INTERNAL")
	}
	if resp.Details["x"] != "y" {
		t.Errorf("expected caller detail, got %v", resp.Details)
	}
	if resp.Details["error"] != "boom" {
		t.Errorf("expected wrapped error text, got %v", resp.Details)
	}
}
