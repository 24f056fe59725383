package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFits(t *testing.T) {
	tests := []struct {
		name       string
		regionSize uint64
		addr       uint64
		size       uint64
		want       bool
	}{
		{"start", 16, 0, 4, true},
		{"exact boundary", 16, 12, 4, true},
		{"one past boundary", 16, 13, 4, false},
		{"address past end", 16, 17, 0, false},
		{"zero size at end", 16, 16, 0, true},
		{"empty region", 0, 0, 1, false},
		{"overflowing address", 16, math.MaxUint64, 4, false},
		{"overflowing size", 16, 4, math.MaxUint64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fits(tt.regionSize, tt.addr, tt.size))
		})
	}
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, uint64(1), SizeOf[int8]())
	assert.Equal(t, uint64(1), SizeOf[uint8]())
	assert.Equal(t, uint64(2), SizeOf[int16]())
	assert.Equal(t, uint64(4), SizeOf[int32]())
	assert.Equal(t, uint64(4), SizeOf[float32]())
	assert.Equal(t, uint64(8), SizeOf[uint64]())
	assert.Equal(t, uint64(8), SizeOf[float64]())
}

func TestReadWrite_RoundTrip(t *testing.T) {
	buf := NewBuffer(64)

	require.True(t, Write[int8](buf, 0, -5))
	require.True(t, Write[uint16](buf, 2, 0xBEEF))
	require.True(t, Write[int32](buf, 4, math.MinInt32))
	require.True(t, Write[int64](buf, 8, -1))
	require.True(t, Write[float32](buf, 16, 3.5))
	require.True(t, Write[float64](buf, 24, math.Pi))
	require.True(t, Write[uint64](buf, 56, math.MaxUint64))

	i8, ok := Read[int8](buf, 0)
	require.True(t, ok)
	assert.Equal(t, int8(-5), i8)

	u16, ok := Read[uint16](buf, 2)
	require.True(t, ok)
	assert.Equal(t, uint16(0xBEEF), u16)

	i32, ok := Read[int32](buf, 4)
	require.True(t, ok)
	assert.Equal(t, int32(math.MinInt32), i32)

	i64, ok := Read[int64](buf, 8)
	require.True(t, ok)
	assert.Equal(t, int64(-1), i64)

	f32, ok := Read[float32](buf, 16)
	require.True(t, ok)
	assert.Equal(t, float32(3.5), f32)

	f64, ok := Read[float64](buf, 24)
	require.True(t, ok)
	assert.Equal(t, math.Pi, f64)

	u64, ok := Read[uint64](buf, 56)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), u64)
}

func TestWrite_LittleEndian(t *testing.T) {
	buf := NewBuffer(4)
	require.True(t, Write[int32](buf, 0, 0x01020304))
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf.Bytes(false))
}

func TestReadWrite_OutOfBounds(t *testing.T) {
	buf := NewBuffer(8)
	for i := range buf.data {
		buf.data[i] = 0xAA
	}
	snapshot := append([]byte(nil), buf.data...)

	for _, addr := range []uint64{5, 6, 7, 8, 100, math.MaxUint64 - 1} {
		_, ok := Read[int32](buf, addr)
		assert.False(t, ok, "read at %d", addr)
		assert.False(t, Write[int32](buf, addr, 1), "write at %d", addr)
	}
	// No partial writes at the tail.
	assert.Equal(t, snapshot, buf.data)

	// The exact boundary is addressable.
	assert.True(t, Write[int32](buf, 4, 7))
	v, ok := Read[int32](buf, 4)
	require.True(t, ok)
	assert.Equal(t, int32(7), v)
}

func TestRead_NilRegion(t *testing.T) {
	_, ok := Read[int32](nil, 0)
	assert.False(t, ok)
	assert.False(t, Write[int32](nil, 0, 1))
}

// shortRegion reports more bytes than its view holds.
type shortRegion struct{ data []byte }

func (r shortRegion) Size() uint64      { return uint64(len(r.data)) + 8 }
func (r shortRegion) Bytes(bool) []byte { return r.data }

func TestRead_ViewShorterThanReportedSize(t *testing.T) {
	r := shortRegion{data: make([]byte, 4)}
	_, ok := Read[int32](r, 0)
	assert.True(t, ok)
	_, ok = Read[int32](r, 4)
	assert.False(t, ok)
	assert.False(t, Write[int32](r, 4, 1))
}

// countingRegion records how often size and base were queried.
type countingRegion struct {
	*Buffer
	sizeCalls, bytesCalls int
}

func (r *countingRegion) Size() uint64 {
	r.sizeCalls++
	return r.Buffer.Size()
}

func (r *countingRegion) Bytes(mutable bool) []byte {
	r.bytesCalls++
	return r.Buffer.Bytes(mutable)
}

func TestAccess_RequeriesRegion(t *testing.T) {
	r := &countingRegion{Buffer: NewBuffer(4)}

	_, ok := Read[int32](r, 4)
	assert.False(t, ok)

	r.Grow(4) // relocates backing storage
	require.True(t, Write[int32](r, 4, 42))
	v, ok := Read[int32](r, 4)
	require.True(t, ok)
	assert.Equal(t, int32(42), v)

	assert.Equal(t, 3, r.sizeCalls)
	assert.Equal(t, 2, r.bytesCalls)
}

func TestBuffer_GrowPreservesContent(t *testing.T) {
	buf := NewBuffer(4)
	require.True(t, Write[int32](buf, 0, 99))
	old := buf.Bytes(false)

	buf.Grow(12)
	assert.Equal(t, uint64(16), buf.Size())
	v, ok := Read[int32](buf, 0)
	require.True(t, ok)
	assert.Equal(t, int32(99), v)

	// Old view is detached from the region after relocation.
	old[0] = 0
	v, _ = Read[int32](buf, 0)
	assert.Equal(t, int32(99), v)
}

func TestAccessor(t *testing.T) {
	buf := NewBuffer(16)
	acc := NewAccessor(buf)

	assert.Equal(t, uint64(16), acc.Size())
	assert.True(t, acc.Fits(12, 4))
	assert.False(t, acc.Fits(13, 4))

	require.True(t, acc.SetInt32(0, -12))
	v, ok := acc.Int32(0)
	require.True(t, ok)
	assert.Equal(t, int32(-12), v)

	require.True(t, acc.WriteBytes(8, []byte("add\x00")))
	b, ok := acc.ReadBytes(8, 3)
	require.True(t, ok)
	assert.Equal(t, []byte("add"), b)

	// Copies are detached from the region.
	b[0] = 'x'
	b2, _ := acc.ReadBytes(8, 3)
	assert.Equal(t, []byte("add"), b2)

	assert.False(t, acc.WriteBytes(14, []byte("abc")))
	_, ok = acc.ReadBytes(14, 3)
	assert.False(t, ok)

	var empty Accessor
	assert.Equal(t, uint64(0), empty.Size())
	_, ok = empty.Int32(0)
	assert.False(t, ok)
}
