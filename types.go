package progbridge

import "github.com/progbridge/progbridge/domain/entities"

// Config is a decoded configuration document.
type Config map[string]interface{}

// Configuration keys understood by ParseRunConfig and ParseCompileConfig.
const (
	KeyEntry      = "entry"
	KeyMemorySize = "memory_size"
	KeyStackSize  = "stack_size"
	KeyProgram    = "program"
	KeyDescriptor = "descriptor"
	KeyVerbose    = "verbose"
)

// RunRequest and CompileRequest are re-exported for callers that only import
// the root package.
type (
	RunRequest     = entities.RunRequest
	CompileRequest = entities.CompileRequest
)

const (
	// Version of the module.
	Version = "0.1.0"
	// DescriptorVersion is the ops descriptor format written by this version.
	DescriptorVersion = entities.DescriptorVersion
)
