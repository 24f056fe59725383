package memory

// Region is an externally owned, contiguous byte region.
type Region interface {
	// Size reports the current region size in bytes.
	Size() uint64

	// Bytes returns a view of the whole region starting at its base.
	// mutable requests a view that may be written through. The view is only
	// valid until the engine next resizes or relocates the region.
	Bytes(mutable bool) []byte
}

// Fits reports whether size bytes at addr lie entirely inside a region of
// regionSize bytes. The boundary is inclusive: addr+size == regionSize fits.
func Fits(regionSize, addr, size uint64) bool {
	if addr > regionSize {
		return false
	}
	return size <= regionSize-addr
}

// view re-queries the region and returns the size bytes at addr, or nil when
// they are out of bounds. A view shorter than the reported size is treated as
// out of bounds.
func view(r Region, addr, size uint64, mutable bool) []byte {
	if r == nil || !Fits(r.Size(), addr, size) {
		return nil
	}
	base := r.Bytes(mutable)
	if !Fits(uint64(len(base)), addr, size) {
		return nil
	}
	return base[addr : addr+size : addr+size]
}
