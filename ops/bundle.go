package ops

import (
	"fmt"
	"io"
)

// Bundle is a pre-configured set of related operations.
// Bundles allow registering multiple handlers at once.
type Bundle interface {
	// Handlers returns the handlers in the bundle.
	Handlers() []Handler
}

type staticBundle struct {
	handlers []Handler
}

func (b *staticBundle) Handlers() []Handler {
	return b.handlers
}

// BuiltinBundle returns the operations every host provides:
//
//	add(a i32, b i32) -> c i32   two's-complement wrapping sum
//	out(v i32)                   writes "out: <v>" as one line to w
//
// A nil w discards output.
func BuiltinBundle(w io.Writer) Bundle {
	if w == nil {
		w = io.Discard
	}
	return &staticBundle{
		handlers: []Handler{
			Binary("add", func(a, b int32) int32 { return a + b }).
				Described("Stores the wrapping sum of two i32 values."),
			Consumer("out", func(_ OpContext, v int32) {
				fmt.Fprintf(w, "out: %d\n", v)
			}).Described("Emits an i32 value as output."),
		},
	}
}

// ArithmeticBundle returns the i32 arithmetic, comparison and bitwise
// operations. Comparisons store 1 or 0. Division and remainder by zero leave
// the target untouched; shift counts are taken modulo 32.
func ArithmeticBundle() Bundle {
	return &staticBundle{
		handlers: []Handler{
			Binary("sub", func(a, b int32) int32 { return a - b }),
			Binary("mul", func(a, b int32) int32 { return a * b }),
			PartialBinary("div", func(a, b int32) (int32, bool) {
				if b == 0 {
					return 0, false
				}
				return a / b, true
			}),
			PartialBinary("mod", func(a, b int32) (int32, bool) {
				if b == 0 {
					return 0, false
				}
				return a % b, true
			}),
			Unary("mov", func(v int32) int32 { return v }),
			Unary("neg", func(v int32) int32 { return ^v }).
				Described("Stores the bitwise complement."),
			Binary("and", func(a, b int32) int32 { return a & b }),
			Binary("or", func(a, b int32) int32 { return a | b }),
			Binary("xor", func(a, b int32) int32 { return a ^ b }),
			Binary("lsh", func(a, b int32) int32 { return a << (uint32(b) & 31) }),
			Binary("rsh", func(a, b int32) int32 { return a >> (uint32(b) & 31) }),
			Binary("eq", compare(func(a, b int32) bool { return a == b })),
			Binary("nq", compare(func(a, b int32) bool { return a != b })),
			Binary("gt", compare(func(a, b int32) bool { return a > b })),
			Binary("lt", compare(func(a, b int32) bool { return a < b })),
			Binary("ge", compare(func(a, b int32) bool { return a >= b })),
			Binary("le", compare(func(a, b int32) bool { return a <= b })),
		},
	}
}

func compare(pred func(a, b int32) bool) func(a, b int32) int32 {
	return func(a, b int32) int32 {
		if pred(a, b) {
			return 1
		}
		return 0
	}
}

type compositeBundle struct {
	bundles []Bundle
}

func (b *compositeBundle) Handlers() []Handler {
	var result []Handler
	for _, bundle := range b.bundles {
		result = append(result, bundle.Handlers()...)
	}
	return result
}

// Combine merges bundles into one. Names must stay unique across them.
func Combine(bundles ...Bundle) Bundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all handlers from a bundle.
func WithBundle(bundle Bundle) Option {
	return func(b *dispatcherBuilder) {
		for _, h := range bundle.Handlers() {
			if err := b.addHandler(h); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
