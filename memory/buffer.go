package memory

// Buffer is a Region backed by a Go slice. Engines that run in-process and
// tests use it; Grow relocates the backing storage the way a real engine may
// between operations.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a zeroed region of size bytes.
func NewBuffer(size uint64) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// Size implements Region.
func (b *Buffer) Size() uint64 {
	return uint64(len(b.data))
}

// Bytes implements Region.
func (b *Buffer) Bytes(bool) []byte {
	return b.data
}

// Grow extends the region by n bytes, moving it to new storage.
func (b *Buffer) Grow(n uint64) {
	next := make([]byte, uint64(len(b.data))+n)
	copy(next, b.data)
	b.data = next
}
