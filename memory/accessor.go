package memory

// Accessor binds the typed helpers to one region. It holds no state of its
// own besides the region handle, so it is cheap to build per operation.
type Accessor struct {
	region Region
}

// NewAccessor returns an accessor over r.
func NewAccessor(r Region) Accessor {
	return Accessor{region: r}
}

// Region returns the underlying region.
func (a Accessor) Region() Region {
	return a.region
}

// Size reports the region size at the time of the call.
func (a Accessor) Size() uint64 {
	if a.region == nil {
		return 0
	}
	return a.region.Size()
}

// Fits reports whether size bytes at addr are currently addressable.
func (a Accessor) Fits(addr, size uint64) bool {
	return Fits(a.Size(), addr, size)
}

// Int32 reads a 4-byte signed integer.
func (a Accessor) Int32(addr uint64) (int32, bool) {
	return Read[int32](a.region, addr)
}

// SetInt32 writes a 4-byte signed integer, dropping out-of-bounds writes.
func (a Accessor) SetInt32(addr uint64, v int32) bool {
	return Write(a.region, addr, v)
}

// ReadBytes copies n bytes starting at addr. ok is false when the range is out of bounds.
func (a Accessor) ReadBytes(addr, n uint64) ([]byte, bool) {
	b := view(a.region, addr, n, false)
	if b == nil {
		return nil, false
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true
}

// WriteBytes copies data to addr. Nothing is written unless all of data fits.
func (a Accessor) WriteBytes(addr uint64, data []byte) bool {
	b := view(a.region, addr, uint64(len(data)), true)
	if b == nil {
		return false
	}
	copy(b, data)
	return true
}
