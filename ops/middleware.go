package ops

import (
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/memory"
)

// Middleware wraps a Func to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Func) Func

// RecoveryMiddleware stops a panicking handler from unwinding into the
// execution engine. The panic is logged and the operation becomes a no-op
// for whatever it had not yet written.
func RecoveryMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Func) Func {
		return func(ctx OpContext, req entities.OpRequest, mem memory.Accessor) {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorContext(ctx, "operation handler panicked",
						"op", ctx.OpName(),
						"panic", r,
						"stack", string(debug.Stack()))
				}
			}()
			next(ctx, req, mem)
		}
	}
}

// LoggingMiddleware logs every executed operation at Debug level.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Func) Func {
		return func(ctx OpContext, req entities.OpRequest, mem memory.Accessor) {
			start := time.Now()
			next(ctx, req, mem)
			logger.DebugContext(ctx, "operation executed",
				"op", ctx.OpName(),
				"params", req.Params,
				"targets", req.Targets,
				"duration", time.Since(start))
		}
	}
}
