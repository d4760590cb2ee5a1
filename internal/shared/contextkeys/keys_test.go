package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "techquiz-server context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, RunIDKey, "run-123")
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")
	ctx = context.WithValue(ctx, ComponentKey, "seed-runner")
	ctx = context.WithValue(ctx, SubjectKey, "ops")

	assert.Equal(t, "run-123", ctx.Value(RunIDKey))
	assert.Equal(t, "req-456", ctx.Value(RequestIDKey))
	assert.Equal(t, "seed-runner", ctx.Value(ComponentKey))
	assert.Equal(t, "ops", ctx.Value(SubjectKey))
	assert.Nil(t, ctx.Value(contextKey("missing")))
}
