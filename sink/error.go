package sink

import (
	"fmt"
	"io"
	"log/slog"
)

// errorSinkConfig holds configuration for the ErrorSink.
type errorSinkConfig struct {
	logger         *slog.Logger
	writer         io.Writer // optional operator console
	transcriptSize int
}

func defaultErrorSinkConfig() errorSinkConfig {
	return errorSinkConfig{
		transcriptSize: DefaultMaxTranscriptSize,
	}
}

// ErrorSinkOption configures an ErrorSink.
type ErrorSinkOption func(*errorSinkConfig)

// WithLogger sets the logger each message is surfaced on. Default is slog.Default().
func WithLogger(logger *slog.Logger) ErrorSinkOption {
	return func(c *errorSinkConfig) {
		c.logger = logger
	}
}

// WithWriter additionally writes every message as one line to w (e.g. os.Stderr).
func WithWriter(w io.Writer) ErrorSinkOption {
	return func(c *errorSinkConfig) {
		c.writer = w
	}
}

// WithTranscriptSize bounds the retained transcript in bytes.
func WithTranscriptSize(n int) ErrorSinkOption {
	return func(c *errorSinkConfig) {
		c.transcriptSize = n
	}
}

// ErrorSink surfaces engine messages immediately and keeps a bounded transcript.
// Messages are never parsed or categorised. ErrorSink is not safe for
// concurrent use; give each running program its own.
type ErrorSink struct {
	config     errorSinkConfig
	transcript *BoundedBuffer
	messages   []string
	count      int
	last       string
}

// NewErrorSink creates an ErrorSink with the given options.
func NewErrorSink(opts ...ErrorSinkOption) *ErrorSink {
	cfg := defaultErrorSinkConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &ErrorSink{
		config:     cfg,
		transcript: NewBoundedBuffer(cfg.transcriptSize),
	}
}

// Report is the error callback.
func (s *ErrorSink) Report(message string) {
	s.count++
	s.last = message
	s.config.logger.Error(message, "source", "engine")
	if s.config.writer != nil {
		fmt.Fprintln(s.config.writer, message)
	}
	if s.transcript.Len()+len(message)+1 <= s.config.transcriptSize {
		s.messages = append(s.messages, message)
	}
	fmt.Fprintln(s.transcript, message)
}

// Messages returns the messages that fit in the transcript, in arrival order.
func (s *ErrorSink) Messages() []string {
	return append([]string(nil), s.messages...)
}

// Count returns how many messages were reported.
func (s *ErrorSink) Count() int {
	return s.count
}

// Last returns the most recent message, or "".
func (s *ErrorSink) Last() string {
	return s.last
}

// Transcript returns the retained messages, one per line.
func (s *ErrorSink) Transcript() string {
	return s.transcript.String()
}

// Truncated reports whether the transcript dropped text.
func (s *ErrorSink) Truncated() bool {
	return s.transcript.Truncated
}
