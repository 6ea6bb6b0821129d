package server

import "net/http"

// responseWriter wraps http.ResponseWriter to capture the status code
// for logging and metrics.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader records the status code. Only the first call is honored.
func (rw *responseWriter) WriteHeader(statusCode int) {
	if rw.written {
		return
	}
	rw.statusCode = statusCode
	rw.written = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Write marks the response as written, implying 200 when no explicit
// status was set.
func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.written = true
	return rw.ResponseWriter.Write(b)
}

// Status returns the status code sent to the client.
func (rw *responseWriter) Status() int {
	return rw.statusCode
}
