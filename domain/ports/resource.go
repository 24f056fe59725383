package ports

// ResourceProvider serves named byte payloads (program source, descriptors,
// imported modules) to the compilation engine.
type ResourceProvider interface {
	// Serve returns the bytes registered under path. The returned slice is
	// borrowed and must not be modified.
	Serve(path string) ([]byte, bool)
}

// ResourceProviderFunc adapts a plain function to ResourceProvider.
type ResourceProviderFunc func(path string) ([]byte, bool)

// Serve implements ResourceProvider.
func (f ResourceProviderFunc) Serve(path string) ([]byte, bool) {
	return f(path)
}
