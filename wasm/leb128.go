package wasm

import (
	"bytes"
	"io"

	"github.com/wippyai/wasm-assembler/wasm/internal/binary"
)

// LEB128 encoding/decoding utilities for WebAssembly binary format

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = binary.ErrOverflow

// EncodeLEB128u encodes an unsigned 32-bit value as LEB128
func EncodeLEB128u(v uint32) []byte {
	return binary.AppendU32(nil, v)
}

// EncodeLEB128u64 encodes an unsigned 64-bit value as LEB128
func EncodeLEB128u64(v uint64) []byte {
	return binary.AppendU64(nil, v)
}

// EncodeLEB128s encodes a signed 32-bit value as LEB128
func EncodeLEB128s(v int32) []byte {
	return binary.AppendS32(nil, v)
}

// EncodeLEB128s64 encodes a signed 64-bit value as LEB128
func EncodeLEB128s64(v int64) []byte {
	return binary.AppendS64(nil, v)
}

// EncodeLEB128uFixed encodes v as unsigned LEB128 padded to exactly width bytes.
// It fails with an overflow error if v needs more than 7*width bits.
func EncodeLEB128uFixed(v uint64, width int) ([]byte, error) {
	b, err := binary.AppendUFixed(make([]byte, 0, width), v, width)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// AppendLEB128u appends the unsigned LEB128 encoding of v to b
func AppendLEB128u(b []byte, v uint32) []byte {
	return binary.AppendU32(b, v)
}

// AppendLEB128u64 appends the unsigned 64-bit LEB128 encoding of v to b
func AppendLEB128u64(b []byte, v uint64) []byte {
	return binary.AppendU64(b, v)
}

// AppendLEB128s appends the signed LEB128 encoding of v to b
func AppendLEB128s(b []byte, v int32) []byte {
	return binary.AppendS32(b, v)
}

// AppendLEB128s64 appends the signed 64-bit LEB128 encoding of v to b
func AppendLEB128s64(b []byte, v int64) []byte {
	return binary.AppendS64(b, v)
}

// WriteLEB128u writes an unsigned LEB128 value
func WriteLEB128u(buf *bytes.Buffer, v uint32) {
	buf.Write(binary.AppendU32(nil, v))
}

// WriteLEB128u64 writes an unsigned 64-bit LEB128 value
func WriteLEB128u64(buf *bytes.Buffer, v uint64) {
	buf.Write(binary.AppendU64(nil, v))
}

// WriteLEB128s writes a signed LEB128 value
func WriteLEB128s(buf *bytes.Buffer, v int32) {
	buf.Write(binary.AppendS32(nil, v))
}

// WriteLEB128s64 writes a signed 64-bit LEB128 value
func WriteLEB128s64(buf *bytes.Buffer, v int64) {
	buf.Write(binary.AppendS64(nil, v))
}

// DecodeLEB128u decodes an unsigned LEB128 value from b and returns the
// number of bytes consumed. Padded encodings are accepted.
func DecodeLEB128u(b []byte) (uint32, int, error) {
	return binary.DecodeU32(b)
}

// DecodeLEB128s decodes a signed LEB128 value from b
func DecodeLEB128s(b []byte) (int32, int, error) {
	return binary.DecodeS32(b)
}

// ReadLEB128u reads an unsigned LEB128 value
func ReadLEB128u(r io.ByteReader) (uint32, error) {
	group, err := readGroup(r, binary.MaxLen32)
	if err != nil {
		return 0, err
	}
	v, _, err := binary.DecodeU32(group)
	return v, err
}

// ReadLEB128u64 reads an unsigned 64-bit LEB128 value
func ReadLEB128u64(r io.ByteReader) (uint64, error) {
	group, err := readGroup(r, binary.MaxLen64)
	if err != nil {
		return 0, err
	}
	v, _, err := binary.DecodeU64(group)
	return v, err
}

// ReadLEB128s reads a signed LEB128 value (32-bit)
func ReadLEB128s(r io.ByteReader) (int32, error) {
	group, err := readGroup(r, binary.MaxLen32)
	if err != nil {
		return 0, err
	}
	v, _, err := binary.DecodeS32(group)
	return v, err
}

// ReadLEB128s64 reads a signed 64-bit LEB128 value
func ReadLEB128s64(r io.ByteReader) (int64, error) {
	group, err := readGroup(r, binary.MaxLen64)
	if err != nil {
		return 0, err
	}
	v, _, err := binary.DecodeS64(group)
	return v, err
}

// readGroup reads bytes up to and including the first one without a
// continuation bit. A group longer than max is an overflow.
func readGroup(r io.ByteReader, max int) ([]byte, error) {
	group := make([]byte, 0, max)
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(group) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		group = append(group, c)
		if c&0x80 == 0 {
			return group, nil
		}
		if len(group) == max {
			return nil, ErrOverflow
		}
	}
}
