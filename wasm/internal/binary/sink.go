package binary

import (
	"github.com/wippyai/wasm-assembler/errors"
)

// Sink is an append-only byte buffer with offset tracking.
// Bytes already written can be replaced in place but never removed.
type Sink struct {
	buf []byte
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{buf: make([]byte, 0, 256)}
}

// Offset returns the number of bytes written so far.
func (s *Sink) Offset() int {
	return len(s.buf)
}

// Byte appends a single byte.
func (s *Sink) Byte(b byte) {
	s.buf = append(s.buf, b)
}

// Append appends raw bytes.
func (s *Sink) Append(data []byte) {
	s.buf = append(s.buf, data...)
}

// OverwriteAt replaces len(b) bytes starting at offset.
// The range must lie inside the bytes already written; otherwise the sink is
// left unchanged and an out-of-bounds error is returned.
func (s *Sink) OverwriteAt(offset int, b []byte) error {
	if offset < 0 || offset+len(b) > len(s.buf) {
		return errors.OutOfBounds(errors.PhaseEncode, nil, offset+len(b), len(s.buf))
	}
	copy(s.buf[offset:], b)
	return nil
}

// Finish returns a copy of the accumulated bytes.
func (s *Sink) Finish() []byte {
	out := make([]byte, len(s.buf))
	copy(out, s.buf)
	return out
}

// WriteU32 writes an unsigned LEB128 uint32.
func (s *Sink) WriteU32(v uint32) {
	s.buf = AppendU32(s.buf, v)
}

// WriteU64 writes an unsigned LEB128 uint64.
func (s *Sink) WriteU64(v uint64) {
	s.buf = AppendU64(s.buf, v)
}

// WriteS32 writes a signed LEB128 int32.
func (s *Sink) WriteS32(v int32) {
	s.buf = AppendS32(s.buf, v)
}

// WriteS64 writes a signed LEB128 int64.
func (s *Sink) WriteS64(v int64) {
	s.buf = AppendS64(s.buf, v)
}

// WriteName writes a length-prefixed UTF-8 string.
func (s *Sink) WriteName(name string) {
	s.WriteU32(uint32(len(name)))
	s.buf = append(s.buf, name...)
}
