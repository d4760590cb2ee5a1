package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT_ERROR"
	ErrorTypeInfrastructure ErrorType = "INFRASTRUCTURE_ERROR"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

// Sentinels for the seeding flow
var (
	ErrModelNotFound       = errors.New("model not found")
	ErrInvalidSeedData     = errors.New("invalid seed data")
	ErrConflict            = errors.New("resource conflict")
	ErrJournalNotAvailable = errors.New("seed journal not available")
)

func isSentinel(err error) bool {
	switch err {
	case ErrModelNotFound, ErrInvalidSeedData, ErrConflict, ErrJournalNotAvailable:
		return true
	}
	return false
}

// CodeModelNotFound is the code carried by lookup errors
const CodeModelNotFound = "MODEL_NOT_FOUND"

// AppError is an error with a classification, an HTTP status and details
type AppError struct {
	Type      ErrorType              `json:"type"`
	Message   string                 `json:"message"`
	Code      string                 `json:"code,omitempty"`
	HTTPCode  int                    `json:"-"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Component string                 `json:"component,omitempty"`
}

// Error appends the cause unless it is one of this package's sentinels,
// which only classify the error.
func (e *AppError) Error() string {
	if e.Cause == nil || isSentinel(e.Cause) {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, message string, httpCode int) *AppError {
	return &AppError{
		Type:     errorType,
		Message:  message,
		HTTPCode: httpCode,
		Details:  make(map[string]interface{}),
	}
}

func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithComponent(component string) *AppError {
	e.Component = component
	return e
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeValidation, message, http.StatusBadRequest)
}

func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewConflictError(message string) *AppError {
	return NewAppError(ErrorTypeConflict, message, http.StatusConflict).WithCause(ErrConflict)
}

func NewInfrastructureError(message string) *AppError {
	return NewAppError(ErrorTypeInfrastructure, message, http.StatusServiceUnavailable)
}

func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, message, http.StatusInternalServerError)
}

// NewLookupError is returned when a model name does not resolve to a model
// with a database handle. The model name is kept in Details["model"].
func NewLookupError(modelName string) *AppError {
	return NewAppError(ErrorTypeNotFound,
		fmt.Sprintf("model or database connection not found for: %s", modelName),
		http.StatusNotFound).
		WithCode(CodeModelNotFound).
		WithDetail("model", modelName).
		WithCause(ErrModelNotFound)
}

// ValidationError is one failed field check
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors accumulates field checks before failing once
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{Errors: make([]ValidationError, 0)}
}

// Error reports the first failure and how many others there are
func (ve *ValidationErrors) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return fmt.Sprintf("validation failed: %s: %s", ve.Errors[0].Field, ve.Errors[0].Message)
	default:
		return fmt.Sprintf("validation failed: %s: %s (and %d more)",
			ve.Errors[0].Field, ve.Errors[0].Message, len(ve.Errors)-1)
	}
}

func (ve *ValidationErrors) Add(field, message string, value interface{}) *ValidationErrors {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message, Value: value})
	return ve
}

func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts the accumulated failures to a validation AppError
// wrapping ErrInvalidSeedData, or nil when there are none.
func (ve *ValidationErrors) ToAppError() *AppError {
	if !ve.HasErrors() {
		return nil
	}
	return NewValidationError(ve.Error()).
		WithCause(ErrInvalidSeedData).
		WithDetail("validation_errors", ve.Errors)
}

// AsAppError reports whether err (or anything it wraps) is an *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// WrapError returns err's AppError if it has one, otherwise an internal
// error with message wrapping err.
func WrapError(err error, message string) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// StatusCode maps err to an HTTP status; errors without one are 500
func StatusCode(err error) int {
	if appErr, ok := AsAppError(err); ok && appErr.HTTPCode != 0 {
		return appErr.HTTPCode
	}
	return http.StatusInternalServerError
}

// IsLookup checks if an error is a model lookup failure
func IsLookup(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeModelNotFound
	}
	return errors.Is(err, ErrModelNotFound)
}

// LookupModel returns the model name carried by a lookup error
func LookupModel(err error) (string, bool) {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Code != CodeModelNotFound {
		return "", false
	}
	name, ok := appErr.Details["model"].(string)
	return name, ok
}

func IsNotFound(err error) bool {
	return hasType(err, ErrorTypeNotFound) || errors.Is(err, ErrModelNotFound)
}

func IsValidation(err error) bool {
	return hasType(err, ErrorTypeValidation) || errors.Is(err, ErrInvalidSeedData)
}

func IsConflict(err error) bool {
	return hasType(err, ErrorTypeConflict) || errors.Is(err, ErrConflict)
}

func hasType(err error, t ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == t
}
