package ops

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/memory"
)

// Dispatcher is an immutable table of named operation handlers.
// Once created via NewDispatcher, handlers cannot be added or removed, so
// lookups during execution need no locking and one Dispatcher may serve any
// number of concurrently running programs.
type Dispatcher struct {
	handlers map[string]registered
	names    []string // sorted for consistent iteration
	logger   *slog.Logger
}

// registered is a handler with its middleware applied and its operand shape
// in descriptor form.
type registered struct {
	fn   Func
	spec entities.OpSpec
}

// dispatcherBuilder accumulates configuration during construction.
type dispatcherBuilder struct {
	handlers   map[string]Handler
	middleware []Middleware
	logger     *slog.Logger
	errors     []error
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*dispatcherBuilder)

// NewDispatcher creates an immutable Dispatcher with the given options.
// Returns an error if a handler name is empty, registered twice, or has no
// implementation.
func NewDispatcher(opts ...Option) (*Dispatcher, error) {
	b := &dispatcherBuilder{
		handlers: make(map[string]Handler),
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	// First middleware wraps outermost.
	wrapped := make(map[string]registered, len(b.handlers))
	for name, h := range b.handlers {
		fn := h.Fn
		for i := len(b.middleware) - 1; i >= 0; i-- {
			fn = b.middleware[i](fn)
		}
		wrapped[name] = registered{fn: fn, spec: h.OpSpec()}
	}

	return &Dispatcher{
		handlers: wrapped,
		names:    names,
		logger:   logger,
	}, nil
}

// Dispatch executes one operation request against region. It never fails:
// an unknown name, a request with fewer addresses than the handler declares,
// or any declared operand outside the region turns the request into a no-op.
// Its signature matches ports.OpCallback.
func (d *Dispatcher) Dispatch(ctx context.Context, req entities.OpRequest, region memory.Region) {
	h, ok := d.handlers[req.Name]
	if !ok {
		d.logger.DebugContext(ctx, "unknown operation ignored", "op", req.Name)
		return
	}

	if !h.spec.Accepts(req) {
		d.logger.DebugContext(ctx, "operation dropped: too few operands",
			"op", req.Name,
			"params", len(req.Params),
			"targets", len(req.Targets))
		return
	}

	mem := memory.NewAccessor(region)
	if !operandsFit(mem, req.Params, h.spec.Params) || !operandsFit(mem, req.Targets, h.spec.Targets) {
		d.logger.DebugContext(ctx, "operation dropped: operand out of bounds",
			"op", req.Name,
			"region_size", mem.Size(),
			"request", req.String())
		return
	}

	h.fn(OpContextFrom(ctx, req.Name), req, mem)
}

func operandsFit(mem memory.Accessor, addrs []uint64, kinds []entities.ValueKind) bool {
	for i, kind := range kinds {
		if !mem.Fits(addrs[i], kind.Size()) {
			return false
		}
	}
	return true
}

// Has returns true if a handler with the given name is registered.
func (d *Dispatcher) Has(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Names returns a sorted list of all registered operation names.
func (d *Dispatcher) Names() []string {
	result := make([]string, len(d.names))
	copy(result, d.names)
	return result
}

// Describe returns the descriptor of every registered operation, sorted by
// name. It is what the compilation engine checks programs against.
func (d *Dispatcher) Describe() *entities.OpsDescriptor {
	desc := &entities.OpsDescriptor{
		Version:    entities.DescriptorVersion,
		Operations: make([]entities.OpSpec, 0, len(d.names)),
	}
	for _, name := range d.names {
		spec := d.handlers[name].spec
		spec.Params = append([]entities.ValueKind(nil), spec.Params...)
		spec.Targets = append([]entities.ValueKind(nil), spec.Targets...)
		desc.Operations = append(desc.Operations, spec)
	}
	return desc
}

func (b *dispatcherBuilder) addHandler(h Handler) error {
	if h.Name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if h.Fn == nil {
		return fmt.Errorf("operation %q has no implementation", h.Name)
	}
	if _, exists := b.handlers[h.Name]; exists {
		return fmt.Errorf("duplicate operation name: %q", h.Name)
	}
	for _, k := range append(append([]entities.ValueKind(nil), h.Spec.Params...), h.Spec.Targets...) {
		if !k.Valid() {
			return fmt.Errorf("operation %q: unsupported operand kind %q", h.Name, k)
		}
	}
	b.handlers[h.Name] = h
	return nil
}

// WithHandler registers a single handler.
func WithHandler(h Handler) Option {
	return func(b *dispatcherBuilder) {
		if err := b.addHandler(h); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithFunc registers a raw Func under name with the given operand shape.
func WithFunc(name string, spec Spec, fn Func) Option {
	return WithHandler(Handler{Name: name, Spec: spec, Fn: fn})
}

// WithMiddleware adds middleware to the dispatcher.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) Option {
	return func(b *dispatcherBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// WithLogger sets the logger used for dropped requests. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *dispatcherBuilder) {
		b.logger = logger
	}
}
