package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse    = "CONFIG_PARSE_ERROR"
	ErrCodeConfigError    = "CONFIG_ERROR"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeOutputError    = "OUTPUT_ERROR"
)

// DomainError carries a stable code alongside a human-readable message.
// Fatal conditions abort the whole run: no partial report is produced.
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with the given code and message
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewConfigNotFoundError reports a missing assertions config file
func NewConfigNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeConfigNotFound, fmt.Sprintf("config file not found: %s", path), cause)
}

// NewConfigParseError reports a malformed assertions config.
// Parse failures are fatal; the run never falls back to defaults silently.
func NewConfigParseError(path string, cause error) error {
	return NewDomainError(ErrCodeConfigParse, fmt.Sprintf("failed to parse config: %s", path), cause)
}

// NewConfigError reports an invalid configuration value
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewInvalidInputError reports a missing or malformed caller input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewOutputError reports a failure writing results
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}
