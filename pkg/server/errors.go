package server

import (
	"errors"
	"net/http"
	"time"

	apperrors "github.com/NVIDIA/tagstamp/pkg/errors"
	"github.com/NVIDIA/tagstamp/pkg/serializer"

	"github.com/google/uuid"
)

// ErrorResponse is the JSON error payload returned by every endpoint.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// HTTPStatusFromCode maps a structured error code to an HTTP status.
// Unknown codes map to 500.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeExternalTool, apperrors.ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// retryableFromCode reports whether a client may retry a request that
// failed with the given code. Transient server-side conditions are
// retryable; client mistakes are not.
func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout,
		apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded,
		apperrors.ErrCodeExternalTool,
		apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails combines two detail maps, the second overwriting the
// first on key collisions. Returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// WriteError writes a structured JSON error response. The request id
// comes from the request context when the middleware chain set one;
// otherwise a fresh id is generated so the response is still traceable.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	serializer.RespondJSON(w, statusCode, ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// WriteErrorFromErr maps err onto an HTTP error response. A structured
// error supplies its own code, message, and context; the underlying
// cause is surfaced under the "error" detail key. Anything else becomes
// an internal error carrying the fallback message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	var serr *apperrors.StructuredError
	if errors.As(err, &serr) {
		merged := mergeDetails(serr.Context, details)
		if serr.Cause != nil {
			if merged == nil {
				merged = make(map[string]any, 1)
			}
			merged["error"] = serr.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(serr.Code), serr.Code, serr.Message,
			retryableFromCode(serr.Code), merged)
		return
	}

	merged := details
	if err != nil {
		merged = mergeDetails(details, map[string]any{"error": err.Error()})
	}
	WriteError(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternal,
		fallbackMessage, true, merged)
}
