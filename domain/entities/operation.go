package entities

import "fmt"

// ValueKind names the scalar type an operand address points at.
type ValueKind string

// Supported operand kinds. Values are stored little-endian.
const (
	KindI8  ValueKind = "i8"
	KindI16 ValueKind = "i16"
	KindI32 ValueKind = "i32"
	KindI64 ValueKind = "i64"
	KindU8  ValueKind = "u8"
	KindU16 ValueKind = "u16"
	KindU32 ValueKind = "u32"
	KindU64 ValueKind = "u64"
	KindF32 ValueKind = "f32"
	KindF64 ValueKind = "f64"
)

// ValueKinds returns every supported kind.
func ValueKinds() []ValueKind {
	return []ValueKind{KindI8, KindI16, KindI32, KindI64, KindU8, KindU16, KindU32, KindU64, KindF32, KindF64}
}

// Size returns the width of the kind in bytes, or 0 for an unknown kind.
func (k ValueKind) Size() uint64 {
	switch k {
	case KindI8, KindU8:
		return 1
	case KindI16, KindU16:
		return 2
	case KindI32, KindU32, KindF32:
		return 4
	case KindI64, KindU64, KindF64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether k is one of the supported kinds.
func (k ValueKind) Valid() bool {
	return k.Size() != 0
}

// OpRequest is one primitive instruction issued by the execution engine.
// It is produced once per instruction and consumed synchronously; never persisted.
type OpRequest struct {
	Name    string
	Params  []uint64
	Targets []uint64
}

func (r OpRequest) String() string {
	return fmt.Sprintf("%s(%v) -> %v", r.Name, r.Params, r.Targets)
}

// OpSpec declares the operand shape of an operation: how many parameter and
// target addresses it expects and what each one points at.
type OpSpec struct {
	Name    string      `json:"name" yaml:"name" validate:"required"`
	Params  []ValueKind `json:"params,omitempty" yaml:"params,omitempty" validate:"dive,oneof=i8 i16 i32 i64 u8 u16 u32 u64 f32 f64"`
	Targets []ValueKind `json:"targets,omitempty" yaml:"targets,omitempty" validate:"dive,oneof=i8 i16 i32 i64 u8 u16 u32 u64 f32 f64"`
	// Description is free text carried into generated descriptors.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Accepts reports whether req carries at least the addresses the spec needs.
// Extra addresses are ignored by handlers.
func (s OpSpec) Accepts(req OpRequest) bool {
	return len(req.Params) >= len(s.Params) && len(req.Targets) >= len(s.Targets)
}
