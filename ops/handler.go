package ops

import (
	"fmt"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/memory"
)

// Func executes one operation. By the time it runs, the dispatcher has
// checked that every declared parameter and target is addressable, so a Func
// only has to honor the operand order of its Spec.
type Func func(ctx OpContext, req entities.OpRequest, mem memory.Accessor)

// Spec declares the operand shape of a handler.
type Spec struct {
	Params      []entities.ValueKind
	Targets     []entities.ValueKind
	Description string
}

// Handler binds an operation name to its implementation.
type Handler struct {
	Name string
	Spec Spec
	Fn   Func
}

// OpSpec converts the handler to its descriptor entry.
func (h Handler) OpSpec() entities.OpSpec {
	return entities.OpSpec{
		Name:        h.Name,
		Params:      append([]entities.ValueKind(nil), h.Spec.Params...),
		Targets:     append([]entities.ValueKind(nil), h.Spec.Targets...),
		Description: h.Spec.Description,
	}
}

// KindOf returns the descriptor kind for a scalar type.
func KindOf[T memory.Scalar]() entities.ValueKind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return entities.KindI8
	case int16:
		return entities.KindI16
	case int32:
		return entities.KindI32
	case int64:
		return entities.KindI64
	case uint8:
		return entities.KindU8
	case uint16:
		return entities.KindU16
	case uint32:
		return entities.KindU32
	case uint64:
		return entities.KindU64
	case float32:
		return entities.KindF32
	case float64:
		return entities.KindF64
	default:
		panic(fmt.Sprintf("ops: unsupported scalar %T", zero))
	}
}

// Unary builds a handler reading one A parameter and writing one R target.
func Unary[A, R memory.Scalar](name string, fn func(A) R) Handler {
	return Handler{
		Name: name,
		Spec: Spec{
			Params:  []entities.ValueKind{KindOf[A]()},
			Targets: []entities.ValueKind{KindOf[R]()},
		},
		Fn: func(_ OpContext, req entities.OpRequest, mem memory.Accessor) {
			a, ok := memory.Read[A](mem.Region(), req.Params[0])
			if !ok {
				return
			}
			memory.Write(mem.Region(), req.Targets[0], fn(a))
		},
	}
}

// Binary builds a handler reading A and B parameters and writing one R target.
func Binary[A, B, R memory.Scalar](name string, fn func(A, B) R) Handler {
	return PartialBinary(name, func(a A, b B) (R, bool) {
		return fn(a, b), true
	})
}

// PartialBinary is Binary for functions undefined on part of their domain.
// When fn reports false the target is left untouched.
func PartialBinary[A, B, R memory.Scalar](name string, fn func(A, B) (R, bool)) Handler {
	return Handler{
		Name: name,
		Spec: Spec{
			Params:  []entities.ValueKind{KindOf[A](), KindOf[B]()},
			Targets: []entities.ValueKind{KindOf[R]()},
		},
		Fn: func(_ OpContext, req entities.OpRequest, mem memory.Accessor) {
			a, ok := memory.Read[A](mem.Region(), req.Params[0])
			if !ok {
				return
			}
			b, ok := memory.Read[B](mem.Region(), req.Params[1])
			if !ok {
				return
			}
			r, ok := fn(a, b)
			if !ok {
				return
			}
			memory.Write(mem.Region(), req.Targets[0], r)
		},
	}
}

// Consumer builds a handler reading one A parameter and producing no target,
// typically to emit the value somewhere outside the region.
func Consumer[A memory.Scalar](name string, fn func(OpContext, A)) Handler {
	return Handler{
		Name: name,
		Spec: Spec{
			Params: []entities.ValueKind{KindOf[A]()},
		},
		Fn: func(ctx OpContext, req entities.OpRequest, mem memory.Accessor) {
			v, ok := memory.Read[A](mem.Region(), req.Params[0])
			if !ok {
				return
			}
			fn(ctx, v)
		},
	}
}

// Described returns a copy of h with the given description.
func (h Handler) Described(text string) Handler {
	h.Spec.Description = text
	return h
}
