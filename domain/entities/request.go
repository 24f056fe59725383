package entities

import "math"

// Default run parameters used when the embedding application does not supply them.
const (
	DefaultEntry      = "main"
	DefaultMemorySize = 1024
	DefaultStackSize  = 1024
)

// CompileRequest describes one invocation of the compilation engine.
// Paths are resource names answered by the resource provider, not filesystem paths.
type CompileRequest struct {
	// ProgramPath names the entry module of the program.
	ProgramPath string `json:"program" yaml:"program" validate:"required"`

	// DescriptorPath names the operations descriptor the program is checked against.
	DescriptorPath string `json:"descriptor" yaml:"descriptor" validate:"required"`

	// Verbose asks for an indented, human-oriented textual form.
	// It only affects compile-to-text.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// RunRequest describes one invocation of the execution engine.
type RunRequest struct {
	// Program is the binary form produced by compile-to-binary.
	Program []byte `json:"-" yaml:"-" validate:"required,min=1"`

	// Entry is the symbol the execution engine starts from.
	Entry string `json:"entry" yaml:"entry" validate:"required"`

	// MemorySize and StackSize size the State Memory Region. The engine owns
	// the region; these are the minimum it must make available.
	MemorySize uint64 `json:"memory_size" yaml:"memory_size" validate:"gt=0"`
	StackSize  uint64 `json:"stack_size" yaml:"stack_size" validate:"gt=0"`
}

// RegionSize returns the number of bytes the run asks the engine to provide.
// ok is false when the sum does not fit in a uint64.
func (r RunRequest) RegionSize() (size uint64, ok bool) {
	if r.StackSize > math.MaxUint64-r.MemorySize {
		return 0, false
	}
	return r.MemorySize + r.StackSize, true
}
