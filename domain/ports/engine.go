package ports

import (
	"context"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/memory"
)

// ResultCallback receives the artifact of one compilation call. A nil or
// empty slice means "no result".
type ResultCallback func(data []byte)

// ErrorCallback receives one free-text message from an engine.
type ErrorCallback func(message string)

// OpCallback receives one operation request raised by a running program,
// together with the state region it applies to. It returns nothing and must
// not fail: bad requests are dropped.
type OpCallback func(ctx context.Context, req entities.OpRequest, region memory.Region)

// Compiler is the external program-compilation engine.
// Both entry points report success as a bool and deliver every diagnostic
// through report.
type Compiler interface {
	// CompileText compiles the program into its textual intermediate form.
	CompileText(ctx context.Context, req entities.CompileRequest, resources ResourceProvider, result ResultCallback, report ErrorCallback) bool

	// CompileBinary compiles the program into its executable binary form.
	CompileBinary(ctx context.Context, req entities.CompileRequest, resources ResourceProvider, result ResultCallback, report ErrorCallback) bool
}

// Engine is the external program-execution engine.
type Engine interface {
	// Run executes the binary program from its entry symbol. Each operation
	// request is delivered through dispatch; failures through report.
	Run(ctx context.Context, req entities.RunRequest, dispatch OpCallback, report ErrorCallback) bool
}
