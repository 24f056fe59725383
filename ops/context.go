package ops

import (
	"context"
)

// OpContext wraps a standard context.Context with the name of the operation
// being executed, so middleware can label what it observes.
type OpContext interface {
	context.Context

	// OpName returns the name of the operation being executed.
	OpName() string
}

type opContext struct {
	context.Context
	name string
}

// NewOpContext creates a new OpContext wrapping the given context.
func NewOpContext(ctx context.Context, name string) OpContext {
	return &opContext{
		Context: ctx,
		name:    name,
	}
}

func (c *opContext) OpName() string {
	return c.name
}

// OpContextFrom returns ctx itself if it already is an OpContext for name,
// otherwise a new OpContext wrapping it.
func OpContextFrom(ctx context.Context, name string) OpContext {
	if oc, ok := ctx.(OpContext); ok && oc.OpName() == name {
		return oc
	}
	return NewOpContext(ctx, name)
}
