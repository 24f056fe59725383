package sink

// TextSink captures the textual artifact of one compile-to-text invocation.
// A nil or empty push leaves it at its initial empty value. The zero value is ready to use.
type TextSink struct {
	text     string
	received bool
}

// Receive is the result callback. A later non-empty push replaces an earlier one.
func (s *TextSink) Receive(data []byte) {
	if len(data) == 0 {
		return
	}
	s.text = string(data)
	s.received = true
}

// String returns the captured text, or "" if nothing was delivered.
func (s *TextSink) String() string {
	return s.text
}

// Received reports whether a non-empty artifact arrived.
func (s *TextSink) Received() bool {
	return s.received
}

// BinarySink captures the binary artifact of one compile-to-binary invocation.
// The pushed bytes are copied, so the engine may reuse its buffer once the
// callback returns. The zero value is ready to use.
type BinarySink struct {
	data []byte
}

// Receive is the result callback. A later non-empty push replaces an earlier one.
func (s *BinarySink) Receive(data []byte) {
	if len(data) == 0 {
		return
	}
	s.data = make([]byte, len(data))
	copy(s.data, data)
}

// Bytes returns the captured artifact, or nil if nothing was delivered.
func (s *BinarySink) Bytes() []byte {
	return s.data
}

// Received reports whether a non-empty artifact arrived.
func (s *BinarySink) Received() bool {
	return s.data != nil
}
