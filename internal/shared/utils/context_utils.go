package utils

import (
	"context"
	"errors"

	"techquiz-server/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrRunIDNotFound      = errors.New("runID not found in context")
	ErrRunIDNotString     = errors.New("runID in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
	ErrSubjectNotFound    = errors.New("subject not found in context")
	ErrSubjectNotString   = errors.New("subject in context is not a string")
	ErrComponentNotFound  = errors.New("component not found in context")
	ErrComponentNotString = errors.New("component in context is not a string")
)

func stringFromContext(ctx context.Context, key interface{}, notFound, notString error) (string, error) {
	if ctx == nil {
		return "", notFound
	}
	val := ctx.Value(key)
	if val == nil {
		return "", notFound
	}
	s, ok := val.(string)
	if !ok {
		return "", notString
	}
	return s, nil
}

// GetRunIDFromContext retrieves the seed run ID from the context.
// It returns an error if the run ID is not found or is not a string.
func GetRunIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RunIDKey, ErrRunIDNotFound, ErrRunIDNotString)
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.RequestIDKey, ErrRequestIDNotFound, ErrRequestIDNotString)
}

// GetSubjectFromContext retrieves the authenticated admin subject from the context.
func GetSubjectFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.SubjectKey, ErrSubjectNotFound, ErrSubjectNotString)
}

// GetComponentFromContext retrieves the component name from the context.
func GetComponentFromContext(ctx context.Context) (string, error) {
	return stringFromContext(ctx, contextkeys.ComponentKey, ErrComponentNotFound, ErrComponentNotString)
}

// WithRunID adds the seed run ID to context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, contextkeys.RunIDKey, runID)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithSubject adds the admin subject to context
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, contextkeys.SubjectKey, subject)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// GetRunIDOrDefault retrieves the run ID from context or returns a default value
func GetRunIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetRunIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetSubjectOrDefault retrieves the subject from context or returns a default value
func GetSubjectOrDefault(ctx context.Context, def string) string {
	if v, err := GetSubjectFromContext(ctx); err == nil {
		return v
	}
	return def
}
