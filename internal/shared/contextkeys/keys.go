// Package contextkeys holds the context.Context keys shared by the seeding
// packages and the logger.
package contextkeys

type contextKey string

func (c contextKey) String() string {
	return "techquiz-server context key " + string(c)
}

const (
	// RunIDKey carries the id of the current seed run
	RunIDKey = contextKey("runID")
	// RequestIDKey carries the admin API request id
	RequestIDKey = contextKey("requestID")
	// ComponentKey carries the emitting component
	ComponentKey = contextKey("component")
	// SubjectKey carries the authenticated admin subject
	SubjectKey = contextKey("subject")
)
