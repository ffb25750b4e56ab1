package binary

import (
	"io"

	"github.com/wippyai/wasm-assembler/errors"
)

// Maximum encoded lengths of minimal LEB128 values.
const (
	MaxLen32 = 5
	MaxLen64 = 10
)

// ErrOverflow is returned when a LEB128 value exceeds the maximum bit width.
var ErrOverflow = &errors.Error{
	Phase:  errors.PhaseDecode,
	Kind:   errors.KindOverflow,
	Detail: "leb128 value exceeds bit width",
}

// AppendU32 appends the unsigned LEB128 encoding of v.
func AppendU32(b []byte, v uint32) []byte {
	return AppendU64(b, uint64(v))
}

// AppendU64 appends the unsigned LEB128 encoding of v. Zero encodes as a single 0x00.
func AppendU64(b []byte, v uint64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

// AppendS32 appends the signed LEB128 encoding of v.
func AppendS32(b []byte, v int32) []byte {
	return AppendS64(b, int64(v))
}

// AppendS64 appends the signed LEB128 encoding of v.
// Emission stops once the remaining bits are pure sign extension of the last group.
func AppendS64(b []byte, v int64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0) {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}

// AppendUFixed appends v as an unsigned LEB128 padded to exactly width bytes.
// Every byte but the last carries the continuation bit, so the slot can later be
// overwritten with any other value of the same width.
func AppendUFixed(b []byte, v uint64, width int) ([]byte, error) {
	if width < 1 || width > MaxLen64 {
		return b, errors.Overflow(errors.PhaseEncode, v, width)
	}
	if bits := uint(width) * 7; bits < 64 && v>>bits != 0 {
		return b, errors.Overflow(errors.PhaseEncode, v, width)
	}
	for i := 0; i < width; i++ {
		c := byte(v & 0x7f)
		v >>= 7
		if i < width-1 {
			c |= 0x80
		}
		b = append(b, c)
	}
	return b, nil
}

// DecodeU32 decodes an unsigned LEB128 value and returns it with the number of bytes read.
// Non-minimal encodings, such as fixed-width slots, are accepted.
func DecodeU32(b []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i, c := range b {
		if i == MaxLen32 {
			return 0, 0, ErrOverflow
		}
		if shift == 28 && c&0x70 != 0 {
			return 0, 0, ErrOverflow
		}
		result |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, io.ErrUnexpectedEOF
}

// DecodeU64 decodes an unsigned 64-bit LEB128 value.
func DecodeU64(b []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, c := range b {
		if i == MaxLen64 {
			return 0, 0, ErrOverflow
		}
		if shift == 63 && c&0x7e != 0 {
			return 0, 0, ErrOverflow
		}
		result |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, io.ErrUnexpectedEOF
}

// DecodeS32 decodes a signed 32-bit LEB128 value.
func DecodeS32(b []byte) (int32, int, error) {
	var result int32
	var shift uint
	for i, c := range b {
		if i == MaxLen32 {
			return 0, 0, ErrOverflow
		}
		// unused high bits of the last byte must repeat the sign bit
		if shift == 28 {
			if s := c & 0x78; s != 0 && s != 0x78 {
				return 0, 0, ErrOverflow
			}
		}
		result |= int32(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			if shift < 32 && c&0x40 != 0 {
				result |= ^int32(0) << shift
			}
			return result, i + 1, nil
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}

// DecodeS64 decodes a signed 64-bit LEB128 value.
func DecodeS64(b []byte) (int64, int, error) {
	var result int64
	var shift uint
	for i, c := range b {
		if i == MaxLen64 {
			return 0, 0, ErrOverflow
		}
		if shift == 63 && c != 0x00 && c != 0x7f {
			return 0, 0, ErrOverflow
		}
		result |= int64(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			if shift < 64 && c&0x40 != 0 {
				result |= ^int64(0) << shift
			}
			return result, i + 1, nil
		}
	}
	return 0, 0, io.ErrUnexpectedEOF
}
