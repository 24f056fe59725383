package host

import (
	"io"
	"log/slog"

	"github.com/progbridge/progbridge/domain/ports"
	"github.com/progbridge/progbridge/infrastructure/resourcestore"
	"github.com/progbridge/progbridge/ops"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithCompiler sets the compilation engine. Without one, the compile methods
// return a ConfigError.
func WithCompiler(c ports.Compiler) Option {
	return func(e *Executor) {
		e.compiler = c
	}
}

// WithEngine sets the execution engine. Default is the wazero engine.
func WithEngine(engine ports.Engine) Option {
	return func(e *Executor) {
		e.engine = engine
	}
}

// WithDispatcher sets the operation dispatcher. Default holds the builtin
// operations writing to stdout.
func WithDispatcher(d *ops.Dispatcher) Option {
	return func(e *Executor) {
		e.dispatcher = d
	}
}

// WithResources sets the resource store served to the compiler.
func WithResources(s *resourcestore.Store) Option {
	return func(e *Executor) {
		e.resources = s
	}
}

// WithErrorWriter sets where engine messages are echoed, one per line.
// Default is os.Stderr; nil disables echoing.
func WithErrorWriter(w io.Writer) Option {
	return func(e *Executor) {
		e.errWriter = w
		e.errWriterSet = true
	}
}

// WithParser sets the descriptor parser used by PublishDescriptor.
func WithParser(p ports.DescriptorParser) Option {
	return func(e *Executor) {
		e.parser = p
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}
