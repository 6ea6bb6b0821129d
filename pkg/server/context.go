package server

// contextKey is a private type for request context values set by the
// middleware chain, keeping them collision-free across packages.
type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"
)
