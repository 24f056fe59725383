package wazero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/domain/ports"
)

// Defaults for the guest ABI.
const (
	DefaultModuleName    = "progbridge"
	DefaultMaxOperands   = 64
	DefaultMaxNameLength = 256

	pageSize = 65536
)

var validate = validator.New()

// engineConfig holds configuration for the Engine.
type engineConfig struct {
	logger             *slog.Logger
	cache              wazero.CompilationCache
	cacheDir           string
	moduleName         string
	maxOperands        uint32
	maxNameLength      uint32
	memoryLimitPages   uint32
	interpreter        bool
	wasi               bool
	closeOnContextDone bool
}

func defaultEngineConfig() engineConfig {
	return engineConfig{
		moduleName:    DefaultModuleName,
		maxOperands:   DefaultMaxOperands,
		maxNameLength: DefaultMaxNameLength,
	}
}

// Option configures an Engine.
type Option func(*engineConfig)

// WithModuleName sets the host module name guests import from (default: "progbridge").
func WithModuleName(name string) Option {
	return func(c *engineConfig) {
		c.moduleName = name
	}
}

// WithMaxOperands caps the length of each address list in a request (default: 64).
func WithMaxOperands(n uint32) Option {
	return func(c *engineConfig) {
		c.maxOperands = n
	}
}

// WithMaxNameLength caps the operation name length in bytes (default: 256).
func WithMaxNameLength(n uint32) Option {
	return func(c *engineConfig) {
		c.maxNameLength = n
	}
}

// WithMemoryLimitPages limits guest memory, in 64KiB pages.
// A run asking for more than the limit fails.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *engineConfig) {
		c.memoryLimitPages = pages
	}
}

// WithCompilationCache shares compiled code across runs. The caller owns the cache.
func WithCompilationCache(cache wazero.CompilationCache) Option {
	return func(c *engineConfig) {
		c.cache = cache
	}
}

// WithCompilationCacheDir persists compiled code in dir. The Engine owns the
// cache and releases it on Close.
func WithCompilationCacheDir(dir string) Option {
	return func(c *engineConfig) {
		c.cacheDir = dir
	}
}

// WithInterpreter forces the interpreter instead of the native compiler.
func WithInterpreter() Option {
	return func(c *engineConfig) {
		c.interpreter = true
	}
}

// WithWASI makes wasi_snapshot_preview1 available to programs.
func WithWASI() Option {
	return func(c *engineConfig) {
		c.wasi = true
	}
}

// WithCloseOnContextDone aborts a running program when its context is done.
func WithCloseOnContextDone() Option {
	return func(c *engineConfig) {
		c.closeOnContextDone = true
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// Engine runs WebAssembly programs. It keeps no state between runs besides
// an optional compilation cache, so it is safe for concurrent use.
type Engine struct {
	config    engineConfig
	ownsCache bool
}

var _ ports.Engine = (*Engine)(nil)

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	e := &Engine{config: cfg}
	if cfg.cache == nil && cfg.cacheDir != "" {
		cache, err := wazero.NewCompilationCacheWithDir(cfg.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open compilation cache: %w", err)
		}
		e.config.cache = cache
		e.ownsCache = true
	}
	return e, nil
}

// Close releases the compilation cache if the Engine opened it.
func (e *Engine) Close(ctx context.Context) error {
	if e.ownsCache && e.config.cache != nil {
		return e.config.cache.Close(ctx)
	}
	return nil
}

func (e *Engine) runtimeConfig() wazero.RuntimeConfig {
	var rc wazero.RuntimeConfig
	if e.config.interpreter {
		rc = wazero.NewRuntimeConfigInterpreter()
	} else {
		rc = wazero.NewRuntimeConfig()
	}
	if e.config.memoryLimitPages > 0 {
		rc = rc.WithMemoryLimitPages(e.config.memoryLimitPages)
	}
	if e.config.cache != nil {
		rc = rc.WithCompilationCache(e.config.cache)
	}
	if e.config.closeOnContextDone {
		rc = rc.WithCloseOnContextDone(true)
	}
	return rc
}

// Run executes req.Program from req.Entry. Every operation request the
// program raises goes to dispatch; every failure is delivered to report as
// one message. Run returns whether the entry function completed.
func (e *Engine) Run(ctx context.Context, req entities.RunRequest, dispatch ports.OpCallback, report ports.ErrorCallback) bool {
	if report == nil {
		report = func(string) {}
	}
	fail := func(format string, args ...any) bool {
		report(fmt.Sprintf(format, args...))
		return false
	}

	if err := validate.Struct(req); err != nil {
		return fail("invalid run request: %s", describeValidation(err))
	}

	runID := newRunID()
	ctx = WithRunID(ctx, runID)
	logger := e.config.logger.With("run_id", runID, "entry", req.Entry)

	rt := wazero.NewRuntimeWithConfig(ctx, e.runtimeConfig())
	defer func() {
		if err := rt.Close(ctx); err != nil {
			logger.WarnContext(ctx, "wazero: failed to close runtime", "error", err)
		}
	}()

	if e.config.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			return fail("failed to instantiate WASI: %v", err)
		}
	}

	cfg := e.config
	cfg.logger = logger
	if err := registerHostModule(ctx, rt, cfg, dispatch); err != nil {
		return fail("failed to register host module %q: %v", cfg.moduleName, err)
	}

	compiled, err := rt.CompileModule(ctx, req.Program)
	if err != nil {
		return fail("invalid program: %v", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().
		WithName("program-"+runID).
		WithStartFunctions("_initialize"))
	if err != nil {
		return fail("failed to instantiate program: %v", err)
	}

	mem := mod.Memory()
	if mem == nil {
		return fail("program has no memory")
	}
	need, ok := req.RegionSize()
	if !ok {
		return fail("cannot provide %d+%d bytes of memory: size overflows", req.MemorySize, req.StackSize)
	}
	if uint64(mem.Size()) < need {
		pages := (need - uint64(mem.Size()) + pageSize - 1) / pageSize
		if pages > uint64(^uint32(0)) {
			return fail("cannot provide %d bytes of memory", need)
		}
		if _, ok := mem.Grow(uint32(pages)); !ok {
			return fail("cannot provide %d bytes of memory: limit reached", need)
		}
	}

	entry := mod.ExportedFunction(req.Entry)
	if entry == nil {
		return fail("entry point not found: %s", req.Entry)
	}
	if def := entry.Definition(); len(def.ParamTypes()) != 0 {
		return fail("entry point %s must take no parameters, takes %d", req.Entry, len(def.ParamTypes()))
	}

	logger.DebugContext(ctx, "wazero: running program", "region_size", mem.Size())
	if _, err := entry.Call(ctx); err != nil {
		return fail("program failed: %v", err)
	}
	return true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return strings.Join(fields, ", ")
}
