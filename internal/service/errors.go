package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a gateway failure
type ErrorKind string

const (
	KindInputValidation ErrorKind = "input_validation"
	KindConfigMissing   ErrorKind = "configuration_missing"
	KindAuthRejected    ErrorKind = "authentication_rejected"
	KindQuotaExceeded   ErrorKind = "quota_exceeded"
	KindUpstream        ErrorKind = "upstream_failure"
)

// User-facing messages. Upstream bodies are logged, never returned.
const (
	msgConfigMissing = "OpenAI API key not configured. Please add OPENAI_API_KEY to the server configuration."
	msgAuthRejected  = "Invalid OpenAI API key. Please check your API key configuration."
	msgQuotaExceeded = "API quota exceeded. Please check your OpenAI account."
	msgUpstream      = "Failed to generate content"
)

// GatewayError is a classified, user-safe completion failure
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, for logs only
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the failure kind to the status returned to the browser
func (e *GatewayError) HTTPStatus() int {
	switch e.Kind {
	case KindInputValidation:
		return http.StatusBadRequest
	case KindConfigMissing:
		return http.StatusServiceUnavailable
	case KindAuthRejected:
		return http.StatusUnauthorized
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

func inputError(message string) *GatewayError {
	return &GatewayError{Kind: KindInputValidation, Message: message}
}

func configMissingError() *GatewayError {
	return &GatewayError{Kind: KindConfigMissing, Message: msgConfigMissing}
}

// classifyUpstream turns a failed completion call into a gateway error
func classifyUpstream(err error) *GatewayError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &GatewayError{Kind: KindAuthRejected, Message: msgAuthRejected, Err: err}
		case http.StatusTooManyRequests:
			return &GatewayError{Kind: KindQuotaExceeded, Message: msgQuotaExceeded, Err: err}
		}
	}
	return &GatewayError{Kind: KindUpstream, Message: msgUpstream, Err: err}
}

// ErrorKindOf returns the kind of a gateway error, or "" for other errors
func ErrorKindOf(err error) ErrorKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ""
}

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// ErrInvalidInput marks request validation failures outside the gateway
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
