package sink

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextSink(t *testing.T) {
	t.Run("never invoked", func(t *testing.T) {
		var s TextSink
		assert.Empty(t, s.String())
		assert.False(t, s.Received())
	})

	t.Run("nil push leaves it empty", func(t *testing.T) {
		var s TextSink
		s.Receive(nil)
		s.Receive([]byte{})
		assert.Empty(t, s.String())
		assert.False(t, s.Received())
	})

	t.Run("captures text", func(t *testing.T) {
		var s TextSink
		s.Receive([]byte(`{"modules":[]}`))
		assert.Equal(t, `{"modules":[]}`, s.String())
		assert.True(t, s.Received())
	})

	t.Run("empty push after text keeps text", func(t *testing.T) {
		var s TextSink
		s.Receive([]byte("first"))
		s.Receive(nil)
		assert.Equal(t, "first", s.String())
	})
}

func TestBinarySink(t *testing.T) {
	t.Run("nil push leaves it empty", func(t *testing.T) {
		var s BinarySink
		s.Receive(nil)
		assert.Nil(t, s.Bytes())
		assert.False(t, s.Received())
	})

	t.Run("copies exact bytes", func(t *testing.T) {
		payload := []byte{0x00, 0x61, 0x73, 0x6d, 0xff, 0x00, 0x80}
		var s BinarySink
		s.Receive(payload)

		require.True(t, s.Received())
		assert.Equal(t, payload, s.Bytes())

		// The engine may reuse its buffer after the callback.
		payload[0] = 0x42
		assert.Equal(t, byte(0x00), s.Bytes()[0])
	})
}

func TestErrorSink_SurfacesImmediately(t *testing.T) {
	var logs, console bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s := NewErrorSink(WithLogger(logger), WithWriter(&console))

	s.Report("Could not read file: descriptor.kjo")
	assert.Equal(t, "Could not read file: descriptor.kjo\n", console.String())
	assert.Contains(t, logs.String(), "Could not read file: descriptor.kjo")
	assert.Contains(t, logs.String(), "level=ERROR")

	s.Report("second")
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "second", s.Last())
	assert.Equal(t, "Could not read file: descriptor.kjo\nsecond\n", s.Transcript())
	assert.Equal(t, []string{"Could not read file: descriptor.kjo", "second"}, s.Messages())
	assert.False(t, s.Truncated())
}

func TestErrorSink_ZeroMessages(t *testing.T) {
	s := NewErrorSink()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Last())
	assert.Empty(t, s.Transcript())
	assert.Empty(t, s.Messages())
}

func TestErrorSink_TranscriptBounded(t *testing.T) {
	var console bytes.Buffer
	s := NewErrorSink(
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
		WithWriter(&console),
		WithTranscriptSize(8),
	)

	s.Report("0123456789")
	s.Report("abc")

	assert.Equal(t, 2, s.Count())
	assert.Equal(t, "01234567", s.Transcript())
	assert.Empty(t, s.Messages())
	assert.True(t, s.Truncated())
	// Console still receives everything.
	assert.Equal(t, 2, strings.Count(console.String(), "\n"))
}
