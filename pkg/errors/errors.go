package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/zfogg/swipefeed/pkg/api"
	"github.com/zfogg/swipefeed/pkg/feed"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"

	// Authentication errors
	ErrorTypeAuth         ErrorType = "auth"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeConflict  ErrorType = "conflict"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Feed errors
	ErrorTypePending   ErrorType = "pending"
	ErrorTypeDestroyed ErrorType = "destroyed"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again, or run with --offline."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *CLIError {
	err := NewCLIError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Set a token with SWIPEFEED_API_TOKEN or the api.token config key."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "This video may be private or removed."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	return NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string) *CLIError {
	return NewCLIError(ErrorTypeConflict, message, nil)
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	// Feed sentinels carry the most precise meaning, check them first
	switch {
	case errors.Is(err, feed.ErrNotFound):
		e := NotFoundError("Video", "requested id")
		e.Cause = err
		e.Suggestion = "The video is unavailable. Start without an id to watch the main feed."
		return e
	case errors.Is(err, feed.ErrInteractionPending):
		e := NewCLIError(ErrorTypePending, "A like for this video is still being sent", err)
		e.Suggestion = "Wait a moment and try again."
		return e
	case errors.Is(err, feed.ErrUnknownItem):
		return NewCLIError(ErrorTypeValidation, "Video is not in the loaded feed", err)
	case errors.Is(err, feed.ErrDestroyed):
		return NewCLIError(ErrorTypeDestroyed, "Feed has been closed", err)
	case errors.Is(err, context.DeadlineExceeded):
		e := TimeoutError()
		e.Cause = err
		return e
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return fromAPIError(apiErr)
	}

	// Categorize based on error message
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		e := NetworkError("Could not connect to server. Make sure it's running.")
		e.Type = ErrorTypeConnection
		e.Cause = err
		return e
	case strings.Contains(errMsg, "timeout"), strings.Contains(errMsg, "context deadline exceeded"):
		return TimeoutError()
	case errors.Is(err, feed.ErrNetwork):
		e := NetworkError("Could not reach the video service")
		e.Cause = err
		return e
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

func fromAPIError(apiErr *api.APIError) *CLIError {
	var e *CLIError
	switch {
	case api.IsUnauthorized(apiErr):
		e = AuthError("Invalid or missing token")
	case apiErr.StatusCode == 403:
		e = ForbiddenError()
	case apiErr.StatusCode == 404:
		e = NotFoundError("Resource", apiErr.Code)
	case apiErr.StatusCode == 409:
		e = ConflictError(apiErr.Message)
	case apiErr.StatusCode == 429:
		e = RateLimitError(60)
	case api.IsServerError(apiErr):
		e = ServerError()
	default:
		e = NewCLIError(ErrorTypeUnknown, apiErr.Message, nil)
	}
	e.Cause = apiErr
	e.StatusCode = apiErr.StatusCode
	return e
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString(color.RedString("Error"))
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\n")
		sb.WriteString(color.YellowString("Suggestion: "))
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString(fmt.Sprintf("\nRetry in: %d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
