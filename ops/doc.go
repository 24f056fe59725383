// Package ops implements the Operation Dispatcher: an immutable table from
// operation name to handler, consulted once per operation request raised by a
// running program.
//
// Handlers address the State Memory Region only through memory.Accessor, so
// an operand that falls outside the region is simply absent. The dispatcher
// checks every declared operand before invoking a handler; a request with an
// unknown name, too few addresses, or an operand out of bounds is dropped
// without side effects.
//
// Example:
//
//	d, err := ops.NewDispatcher(
//	    ops.WithMiddleware(ops.RecoveryMiddleware(logger)),
//	    ops.WithBundle(ops.BuiltinBundle(os.Stdout)),
//	    ops.WithHandler(ops.Binary("max", func(a, b int32) int32 { return max(a, b) })),
//	)
package ops
