// Package errors provides structured error types for the video-browser application.
// Errors carry a code, a short message and a suggestion that the CLI and the TUI
// show to the user.
package errors

import (
	"fmt"
	"strings"
)

// AppError represents a structured application error with additional context.
type AppError struct {
	// Code is a unique identifier for the error type (e.g., "CFG_001")
	Code string

	// Message is a brief description of the error
	Message string

	// Suggestion provides actionable guidance for the user
	Suggestion string

	// Cause is the underlying error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Code != "" {
		sb.WriteString(" (code: ")
		sb.WriteString(e.Code)
		sb.WriteString(")")
	}

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError with the same code, or the same
// message when either side has no code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if e.Code != "" && t.Code != "" {
		return e.Code == t.Code
	}
	return e.Message == t.Message
}

// FormatForTUI returns the error laid out for display in a terminal panel.
func (e *AppError) FormatForTUI() string {
	var sb strings.Builder

	sb.WriteString("⚠ ")
	sb.WriteString(e.Message)
	sb.WriteString("\n\n")

	if e.Suggestion != "" {
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n\n")
	}

	if e.Code != "" {
		sb.WriteString("Error Code: ")
		sb.WriteString(e.Code)
	}

	return sb.String()
}

var (
	// ErrConfigUnreadable indicates the configuration file exists but could not be parsed.
	ErrConfigUnreadable = &AppError{
		Code:       "CFG_001",
		Message:    "Configuration file could not be read",
		Suggestion: "Check the YAML syntax of config.yaml, or run 'video-browser config init' to write a fresh one.",
	}

	// ErrConfigInvalid indicates a configuration value is out of range.
	ErrConfigInvalid = &AppError{
		Code:       "CFG_002",
		Message:    "Configuration is invalid",
		Suggestion: "Run 'video-browser config show' to inspect the effective values.",
	}

	// ErrUnsupportedFormat indicates an export file with an unknown extension.
	ErrUnsupportedFormat = &AppError{
		Code:       "EXP_001",
		Message:    "Unsupported export format",
		Suggestion: "Use a file name ending in .json, .yaml or .yml.",
	}

	// ErrLogFileMissing indicates that logging is disabled or the log file does not exist yet.
	ErrLogFileMissing = &AppError{
		Code:       "LOG_001",
		Message:    "Log file not found",
		Suggestion: "Set log.file in config.yaml and start the browser once to create it.",
	}

	// ErrRequestCancelled indicates a mock request was cancelled before its reply.
	ErrRequestCancelled = &AppError{
		Code:       "API_001",
		Message:    "Request cancelled",
		Suggestion: "The request was interrupted before the simulated reply arrived.",
	}
)

// New returns a copy of the sentinel with a custom message.
func New(sentinel *AppError, format string, args ...any) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: sentinel.Suggestion,
	}
}

// Wrap returns a copy of the sentinel carrying cause.
func Wrap(sentinel *AppError, cause error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Suggestion: sentinel.Suggestion,
		Cause:      cause,
	}
}

// NewConfigInvalidError reports an invalid configuration key.
func NewConfigInvalidError(key string, value any, reason string) *AppError {
	return New(ErrConfigInvalid, "Invalid value %v for %s: %s", value, key, reason)
}

// NewUnsupportedFormatError reports an export path with an unknown extension.
func NewUnsupportedFormatError(ext string) *AppError {
	return New(ErrUnsupportedFormat, "Unsupported export format %q", ext)
}

// GetSuggestion extracts the suggestion from an error chain, if any.
func GetSuggestion(err error) string {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Suggestion != "" {
			return appErr.Suggestion
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
