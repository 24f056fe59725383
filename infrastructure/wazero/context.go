package wazero

import (
	"context"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero/api"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var runIDKey = &contextKey{name: "run_id"}

// WithRunID adds the identifier of a program run to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run identifier from the context.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// GetRunID extracts the run identifier from context, falling back to the module name.
func GetRunID(ctx context.Context, mod api.Module) string {
	if id, ok := RunIDFromContext(ctx); ok {
		return id
	}
	return mod.Name()
}

// newRunID returns a time-sortable run identifier.
func newRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}
