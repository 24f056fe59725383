// Package testutil provides common test utilities and assertions for
// progbridge tests.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progbridge/progbridge/memory"
)

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CaptureLogger returns a debug-level logger writing text records to the
// returned buffer.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

// NewRegion allocates a region of size bytes with the given i32 values
// stored at their addresses.
func NewRegion(t *testing.T, size uint64, values map[uint64]int32) *memory.Buffer {
	t.Helper()

	region := memory.NewBuffer(size)
	for addr, v := range values {
		require.True(t, memory.Write(region, addr, v), "address %d does not fit a region of %d bytes", addr, size)
	}
	return region
}

// Snapshot copies the current contents of region.
func Snapshot(region memory.Region) []byte {
	return append([]byte(nil), region.Bytes(false)...)
}

// AssertInt32At asserts that region holds want at addr.
func AssertInt32At(t *testing.T, region memory.Region, addr uint64, want int32, msgAndArgs ...interface{}) {
	t.Helper()

	got, ok := memory.Read[int32](region, addr)
	require.True(t, ok, "address %d is out of bounds", addr)
	assert.Equal(t, want, got, msgAndArgs...)
}

// AssertUnchanged asserts that region still holds the bytes of before.
func AssertUnchanged(t *testing.T, before []byte, region memory.Region, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, before, region.Bytes(false), msgAndArgs...)
}
