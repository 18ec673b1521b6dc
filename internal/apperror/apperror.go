package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for HTTP mapping and logging.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindValidation
	KindBusinessRule
	KindUpstream
)

// AppError carries a classification plus a client-safe message.
type AppError struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, never shown to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func BusinessRule(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

func Upstream(message string, cause error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: cause}
}

// KindOf extracts the classification, defaulting to Unexpected.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// ClientMessage returns the message safe to surface to API clients.
func ClientMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}
