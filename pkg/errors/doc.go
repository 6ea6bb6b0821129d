// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeExternalTool,
//	    "failed to resolve latest tag",
//	    cause,
//	    map[string]interface{}{
//	        "command": "git describe --tags --abbrev=0",
//	        "dir": repoDir,
//	    },
//	)
package errors
