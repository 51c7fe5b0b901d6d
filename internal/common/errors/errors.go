// Package errors provides standardized error handling for BPMN workflow integration.
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

const (
	ErrCodeMigrationFailed           ErrorCode = "MIGRATION_FAILED"
	ErrCodeMigrationValidationFailed ErrorCode = "MIGRATION_VALIDATION_FAILED"
	ErrCodeMissingRequiredField      ErrorCode = "MISSING_REQUIRED_PLACEHOLDER"
	ErrCodeMalformedPlaceholder      ErrorCode = "MALFORMED_PLACEHOLDER"
	ErrCodeUnmappedPlaceholder       ErrorCode = "UNMAPPED_PLACEHOLDER"

	ErrCodeDetectionFailed ErrorCode = "DETECTION_FAILED"
	ErrCodeEmptyTemplate   ErrorCode = "EMPTY_TEMPLATE"

	ErrCodeRulesRegistryInvalid ErrorCode = "RULES_REGISTRY_INVALID"
	ErrCodeCacheBackendFailed   ErrorCode = "CACHE_BACKEND_FAILED"
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
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewMigrationFailedError creates a non-retryable migration error.
// Migration is deterministic over its input, retrying cannot help.
func NewMigrationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMigrationFailed,
		Message:   "Placeholder migration failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMigrationValidationFailedError creates a non-retryable validation error
// for a migrated template that still violates the placeholder contract.
func NewMigrationValidationFailedError(errs []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMigrationValidationFailed,
		Message:   "Migrated template failed placeholder validation",
		Details:   strings.Join(errs, "; "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingRequiredFieldError creates a non-retryable error for absent required placeholders.
func NewMissingRequiredFieldError(fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingRequiredField,
		Message:   "Required placeholders missing from template",
		Details:   fmt.Sprintf("fields: %s", strings.Join(fields, ", ")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedPlaceholderError creates a non-retryable syntax error.
func NewMalformedPlaceholderError(snippets []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedPlaceholder,
		Message:   "Malformed placeholder syntax in template",
		Details:   fmt.Sprintf("snippets: %s", strings.Join(snippets, ", ")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDetectionFailedError creates a non-retryable detection error.
func NewDetectionFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDetectionFailed,
		Message:   "Gap detection failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyTemplateError creates a non-retryable error for absent template text.
func NewEmptyTemplateError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyTemplate,
		Message:   "Template text is required",
		Details:   "input variable templateText was empty or missing",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRulesRegistryInvalidError creates a non-retryable registry schema error.
func NewRulesRegistryInvalidError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRulesRegistryInvalid,
		Message:   "Rewrite rules registry failed schema validation",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheBackendFailedError creates a retryable cache backend error.
func NewCacheBackendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheBackendFailed,
		Message:   "Migration cache backend error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
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
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeMigrationFailed:           "MIGRATION_FAILED",
	ErrCodeMigrationValidationFailed: "MIGRATION_VALIDATION_FAILED",
	ErrCodeMissingRequiredField:      "MISSING_REQUIRED_PLACEHOLDER",
	ErrCodeMalformedPlaceholder:      "MALFORMED_PLACEHOLDER",
	ErrCodeUnmappedPlaceholder:       "UNMAPPED_PLACEHOLDER",
	ErrCodeDetectionFailed:           "DETECTION_FAILED",
	ErrCodeEmptyTemplate:             "EMPTY_TEMPLATE",
	ErrCodeRulesRegistryInvalid:      "RULES_REGISTRY_INVALID",
	ErrCodeCacheBackendFailed:        "CACHE_BACKEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCacheBackendFailed:
		return 3 // Retryable technical errors

	default:
		return 0 // Engine errors are deterministic: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MIGRATION"):
		return "MIGRATION"
	case strings.Contains(codeStr, "PLACEHOLDER") || strings.Contains(codeStr, "TEMPLATE"):
		return "TEMPLATE"
	case strings.Contains(codeStr, "DETECTION"):
		return "DETECTION"
	case strings.Contains(codeStr, "REGISTRY"):
		return "REGISTRY"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
