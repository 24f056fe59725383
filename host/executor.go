package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/progbridge/progbridge/domain/entities"
	domainerrors "github.com/progbridge/progbridge/domain/errors"
	"github.com/progbridge/progbridge/domain/ports"
	"github.com/progbridge/progbridge/infrastructure/parser"
	"github.com/progbridge/progbridge/infrastructure/resourcestore"
	"github.com/progbridge/progbridge/infrastructure/wazero"
	"github.com/progbridge/progbridge/ops"
	"github.com/progbridge/progbridge/sink"
)

// Engine names used in EngineError.
const (
	EngineCompiler = "compiler"
	EngineVM       = "vm"
)

var validate = validator.New()

// Executor drives the external engines on behalf of the embedding application.
// Its methods may be called concurrently; each call gets its own sinks.
type Executor struct {
	compiler     ports.Compiler
	engine       ports.Engine
	dispatcher   *ops.Dispatcher
	resources    *resourcestore.Store
	parser       ports.DescriptorParser
	errWriter    io.Writer
	errWriterSet bool
	logger       *slog.Logger
	ownedEngine  *wazero.Engine
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if !e.errWriterSet {
		e.errWriter = os.Stderr
	}
	if e.parser == nil {
		e.parser = parser.NewYamlDescriptorParser()
	}
	if e.resources == nil {
		e.resources = resourcestore.New(resourcestore.WithLogger(e.logger))
	}

	if e.dispatcher == nil {
		d, err := ops.NewDispatcher(
			ops.WithLogger(e.logger),
			ops.WithMiddleware(ops.RecoveryMiddleware(e.logger)),
			ops.WithBundle(ops.BuiltinBundle(os.Stdout)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create default dispatcher: %w", err)
		}
		e.dispatcher = d
	}

	if e.engine == nil {
		engine, err := wazero.NewEngine(wazero.WithLogger(e.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create default engine: %w", err)
		}
		e.engine = engine
		e.ownedEngine = engine
	}

	return e, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	if e.ownedEngine != nil {
		return e.ownedEngine.Close(ctx)
	}
	return nil
}

// Resources returns the store served to the compilation engine.
func (e *Executor) Resources() *resourcestore.Store {
	return e.resources
}

// Dispatcher returns the operation dispatcher used by Run.
func (e *Executor) Dispatcher() *ops.Dispatcher {
	return e.dispatcher
}

// LoadResource loads the file at path into the store under name.
func (e *Executor) LoadResource(path, name string) error {
	if err := e.resources.LoadFile(path, name); err != nil {
		return &domainerrors.ResourceError{Err: err, Name: name, Path: path}
	}
	return nil
}

// PublishDescriptor stores the descriptor of the dispatcher's operations
// under name, so programs can be compiled against what this host executes.
func (e *Executor) PublishDescriptor(name string) error {
	data, err := e.parser.Encode(e.dispatcher.Describe())
	if err != nil {
		return &domainerrors.SchemaError{Err: err, Type: "OpsDescriptor"}
	}
	if !e.resources.Put(name, data) {
		return &domainerrors.ConfigError{Err: errors.New("invalid resource name"), Field: "name"}
	}
	return nil
}

func (e *Executor) newErrorSink() *sink.ErrorSink {
	opts := []sink.ErrorSinkOption{sink.WithLogger(e.logger)}
	if e.errWriter != nil {
		opts = append(opts, sink.WithWriter(e.errWriter))
	}
	return sink.NewErrorSink(opts...)
}

func (e *Executor) checkCompile(req entities.CompileRequest) error {
	if e.compiler == nil {
		return &domainerrors.ConfigError{Err: errors.New("no compilation engine configured"), Field: "compiler"}
	}
	if err := validate.Struct(req); err != nil {
		return &domainerrors.ConfigError{Err: err}
	}
	return nil
}

// CompileText compiles the program to its textual intermediate form. An
// engine that succeeds without producing text yields "".
func (e *Executor) CompileText(ctx context.Context, req entities.CompileRequest) (string, error) {
	if err := e.checkCompile(req); err != nil {
		return "", err
	}

	var text sink.TextSink
	errs := e.newErrorSink()
	if !e.compiler.CompileText(ctx, req, e.resources, text.Receive, errs.Report) {
		return text.String(), &domainerrors.EngineError{
			Engine:    EngineCompiler,
			Operation: "compile-text",
			Messages:  errs.Messages(),
		}
	}
	return text.String(), nil
}

// CompileBinary compiles the program to its executable binary form. An
// engine that succeeds without producing a binary yields nil.
func (e *Executor) CompileBinary(ctx context.Context, req entities.CompileRequest) ([]byte, error) {
	if err := e.checkCompile(req); err != nil {
		return nil, err
	}

	var bin sink.BinarySink
	errs := e.newErrorSink()
	if !e.compiler.CompileBinary(ctx, req, e.resources, bin.Receive, errs.Report) {
		return bin.Bytes(), &domainerrors.EngineError{
			Engine:    EngineCompiler,
			Operation: "compile-binary",
			Messages:  errs.Messages(),
		}
	}
	return bin.Bytes(), nil
}

// Run executes a binary program. Operation requests go to the dispatcher;
// bounds violations and unknown operations are dropped, never errors.
func (e *Executor) Run(ctx context.Context, req entities.RunRequest) error {
	if err := validate.Struct(req); err != nil {
		return &domainerrors.ConfigError{Err: err}
	}

	errs := e.newErrorSink()
	if !e.engine.Run(ctx, req, e.dispatcher.Dispatch, errs.Report) {
		return &domainerrors.EngineError{
			Engine:    EngineVM,
			Operation: "run",
			Messages:  errs.Messages(),
		}
	}
	return nil
}
