package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates malformed or unusable configuration
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// LayerMissing indicates a required layer module does not exist in the graph
	LayerMissing ErrorCode = "LAYER_MISSING"
	// ContainerInvalid indicates a container that is not under any root package
	ContainerInvalid ErrorCode = "CONTAINER_INVALID"
	// ContractBroken indicates one or more contracts did not hold
	ContractBroken ErrorCode = "CONTRACT_BROKEN"
	// ScanFailed indicates the import scan could not complete
	ScanFailed ErrorCode = "SCAN_FAILED"
	// CacheUnavailable indicates the scan cache could not be opened or read
	CacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	// InternalInvariant indicates a logic defect, not a user error
	InternalInvariant ErrorCode = "INTERNAL_INVARIANT"
)

// LintError represents a layerlint error with a stable code and message
type LintError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error     // Underlying error (not exported to JSON)
}

// New creates a new LintError
func New(code ErrorCode, message string) *LintError {
	return &LintError{Code: code, Message: message}
}

// Newf creates a new LintError with a formatted message
func Newf(code ErrorCode, format string, args ...any) *LintError {
	return &LintError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new LintError wrapping an underlying cause
func Wrap(code ErrorCode, message string, cause error) *LintError {
	return &LintError{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *LintError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *LintError) Unwrap() error {
	return e.cause
}

// CodeOf returns the error code of err, or InternalInvariant if err is not
// a LintError.
func CodeOf(err error) ErrorCode {
	var le *LintError
	if stderrors.As(err, &le) {
		return le.Code
	}
	return InternalInvariant
}

// IsConfiguration reports whether err is a user-fixable configuration error.
// Configuration errors are fatal to a single contract check but must not
// abort the checks of other contracts.
func IsConfiguration(err error) bool {
	switch CodeOf(err) {
	case ConfigInvalid, LayerMissing, ContainerInvalid:
		return true
	}
	return false
}
