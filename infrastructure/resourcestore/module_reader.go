package resourcestore

import (
	"path"

	"github.com/progbridge/progbridge/domain/ports"
)

// ModuleReader resolves module imports for a compilation engine. Relative
// import paths are composed against the directory of the module currently
// being compiled, tracked as a stack while the engine descends into imports.
type ModuleReader struct {
	provider ports.ResourceProvider
	dirs     []string
}

// NewModuleReader creates a ModuleReader serving from provider.
func NewModuleReader(provider ports.ResourceProvider) *ModuleReader {
	return &ModuleReader{provider: provider}
}

// Read returns the source of the module at the already composed path.
func (r *ModuleReader) Read(modulePath string) ([]byte, bool) {
	return r.provider.Serve(CleanName(modulePath))
}

// Push enters the module at modulePath; subsequent Compose calls resolve
// against its directory.
func (r *ModuleReader) Push(modulePath string) {
	r.dirs = append(r.dirs, path.Dir(CleanName(modulePath)))
}

// Pop leaves the innermost module. Popping an empty stack is a no-op.
func (r *ModuleReader) Pop() {
	if len(r.dirs) > 0 {
		r.dirs = r.dirs[:len(r.dirs)-1]
	}
}

// Depth returns the number of modules currently entered.
func (r *ModuleReader) Depth() int {
	return len(r.dirs)
}

// Compose resolves relativePath against the innermost entered module.
func (r *ModuleReader) Compose(relativePath string) string {
	if len(r.dirs) == 0 {
		return CleanName(relativePath)
	}
	return CleanName(path.Join(r.dirs[len(r.dirs)-1], relativePath))
}
