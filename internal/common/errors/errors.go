// Package errors provides standardized error handling for component execution.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Component execution errors
const (
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeQueryBuildFailed      ErrorCode = "QUERY_BUILD_FAILED"
	ErrCodeAPIRequestFailed      ErrorCode = "API_REQUEST_FAILED"
	ErrCodeAPITimeout            ErrorCode = "API_TIMEOUT"
	ErrCodeResponseParsingFailed ErrorCode = "RESPONSE_PARSING_FAILED"

	ErrCodeWorkItemFetchFailed  ErrorCode = "WORK_ITEM_FETCH_FAILED"
	ErrCodeWorkItemCreateFailed ErrorCode = "WORK_ITEM_CREATE_FAILED"
	ErrCodeIssueSearchFailed    ErrorCode = "ISSUE_SEARCH_FAILED"

	ErrCodeComponentNotFound ErrorCode = "COMPONENT_NOT_FOUND"
	ErrCodeComponentDisabled ErrorCode = "COMPONENT_DISABLED"
	ErrCodeManifestInvalid   ErrorCode = "MANIFEST_INVALID"
	ErrCodeExecutionPanic    ErrorCode = "EXECUTION_PANIC"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewMissingParameterError creates a non-retryable error for an absent required input.
func NewMissingParameterError(param string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingParameter,
		Message:   fmt.Sprintf("Required parameter '%s' is missing", param),
		Details:   fmt.Sprintf("parameter: %s", param),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidParameterError creates a non-retryable error for a malformed input value.
func NewInvalidParameterError(param, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidParameter,
		Message:   fmt.Sprintf("Parameter '%s' has an invalid value", param),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryBuildFailedError creates a non-retryable query construction error.
func NewQueryBuildFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryBuildFailed,
		Message:   "Query construction failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPIRequestFailedError creates a retryable error for a failed tracker API call.
func NewAPIRequestFailedError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPIRequestFailed,
		Message:   fmt.Sprintf("API request to '%s' failed", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAPITimeoutError creates a retryable timeout error for a tracker API call.
func NewAPITimeoutError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAPITimeout,
		Message:   fmt.Sprintf("API request to '%s' timed out", service),
		Details:   "request exceeded configured timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResponseParsingFailedError creates a non-retryable error for a malformed API response.
func NewResponseParsingFailedError(service string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseParsingFailed,
		Message:   fmt.Sprintf("Failed to parse response from '%s'", service),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkItemFetchFailedError creates a retryable work item query error.
func NewWorkItemFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkItemFetchFailed,
		Message:   "Work item query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWorkItemCreateFailedError creates a retryable work item creation error.
func NewWorkItemCreateFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWorkItemCreateFailed,
		Message:   "Work item creation failed",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIssueSearchFailedError creates a retryable issue search error.
func NewIssueSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIssueSearchFailed,
		Message:   "Issue search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewComponentNotFoundError creates a non-retryable registry lookup error.
func NewComponentNotFoundError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeComponentNotFound,
		Message:   "Component not found in registry",
		Details:   fmt.Sprintf("component: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewComponentDisabledError creates a non-retryable error for a disabled component.
func NewComponentDisabledError(name string) *StandardError {
	return &StandardError{
		Code:      ErrCodeComponentDisabled,
		Message:   "Component is disabled by configuration",
		Details:   fmt.Sprintf("component: %s", name),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewManifestInvalidError creates a non-retryable manifest parsing error.
func NewManifestInvalidError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeManifestInvalid,
		Message:   "Component manifest is invalid",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExecutionPanicError creates a non-retryable error for a recovered panic.
func NewExecutionPanicError(component string, recovered interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeExecutionPanic,
		Message:   "Component execution panicked",
		Details:   fmt.Sprintf("component: %s, panic: %v", component, recovered),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count a host may apply.
// Components themselves never retry.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAPIRequestFailed,
		ErrCodeWorkItemFetchFailed,
		ErrCodeWorkItemCreateFailed,
		ErrCodeIssueSearchFailed:
		return 3

	case ErrCodeAPITimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PARAMETER") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "AUTHENTICATION"):
		return "AUTH"
	case strings.Contains(codeStr, "QUERY"):
		return "QUERY"
	case strings.Contains(codeStr, "API") || strings.Contains(codeStr, "WORK_ITEM") ||
		strings.Contains(codeStr, "ISSUE") || strings.Contains(codeStr, "RESPONSE"):
		return "TRACKER_API"
	case strings.Contains(codeStr, "COMPONENT") || strings.Contains(codeStr, "MANIFEST"):
		return "REGISTRY"
	default:
		return "OTHER"
	}
}
