package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	Unauthorized = NewApiErr(http.StatusUnauthorized, "unauthorized")
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrExpiredToken = errors.New("expired access token")
	ErrInvalidToken = errors.New("invalid access token")
)

func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingToken,
		Details:    "Missing access token",
		Field:      "authorization",
	}
}

func NewExpiredTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrExpiredToken,
		Details:    "Access token has expired",
		Field:      "authorization",
	}
}

func NewInvalidTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidToken,
		Details:    "Invalid access token",
		Field:      "authorization",
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsExpiredTokenError(err error) bool {
	return errors.Is(err, ErrExpiredToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

// FieldError describes one invalid field of a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the error type every validating operation returns:
// either the caller gets a valid domain object, or this list of field-level
// problems. It maps to a 400 response with the fields in the data payload.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the extended list, so callers can
// accumulate: errs = errs.Add("title", "required").
func (v ValidationErrors) Add(field, message string) ValidationErrors {
	return append(v, FieldError{Field: field, Message: message})
}

func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

func IsValidation(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}
