package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/wasm-assembler/errors"
)

// EncodeArg converts a Go value to wazero's stack encoding for type t.
func EncodeArg(t api.ValueType, v any) (uint64, error) {
	if s, ok := v.(string); ok {
		parsed, err := ParseArg(t, s)
		if err != nil {
			return 0, err
		}
		v = parsed
	}

	switch t {
	case api.ValueTypeI32:
		switch x := v.(type) {
		case int32:
			return api.EncodeI32(x), nil
		case uint32:
			return api.EncodeU32(x), nil
		case int:
			if x < math.MinInt32 || x > math.MaxInt32 {
				return 0, rangeError(t, v)
			}
			return api.EncodeI32(int32(x)), nil
		case int64:
			if x < math.MinInt32 || x > math.MaxInt32 {
				return 0, rangeError(t, v)
			}
			return api.EncodeI32(int32(x)), nil
		}
	case api.ValueTypeI64:
		switch x := v.(type) {
		case int64:
			return api.EncodeI64(x), nil
		case uint64:
			return x, nil
		case int:
			return api.EncodeI64(int64(x)), nil
		case int32:
			return api.EncodeI64(int64(x)), nil
		}
	case api.ValueTypeF32:
		switch x := v.(type) {
		case float32:
			return api.EncodeF32(x), nil
		case float64:
			return api.EncodeF32(float32(x)), nil
		}
	case api.ValueTypeF64:
		switch x := v.(type) {
		case float64:
			return api.EncodeF64(x), nil
		case float32:
			return api.EncodeF64(float64(x)), nil
		}
	default:
		return 0, errors.InvalidInput(errors.PhaseRuntime,
			"unsupported parameter type "+api.ValueTypeName(t))
	}
	return 0, errors.InvalidInput(errors.PhaseRuntime,
		fmt.Sprintf("cannot pass %T as %s", v, api.ValueTypeName(t)))
}

// ParseArg parses command-line text as a value of type t. Integers accept
// the 0x/0o/0b prefixes.
func ParseArg(t api.ValueType, s string) (any, error) {
	s = strings.TrimSpace(s)
	switch t {
	case api.ValueTypeI32:
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			// allow the unsigned spelling of negative values, e.g. 0xFFFFFFFF
			u, uerr := strconv.ParseUint(s, 0, 32)
			if uerr != nil {
				return nil, errors.ParseFailed("i32 argument", err)
			}
			return uint32(u), nil
		}
		return int32(v), nil
	case api.ValueTypeI64:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			u, uerr := strconv.ParseUint(s, 0, 64)
			if uerr != nil {
				return nil, errors.ParseFailed("i64 argument", err)
			}
			return u, nil
		}
		return v, nil
	case api.ValueTypeF32:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, errors.ParseFailed("f32 argument", err)
		}
		return float32(v), nil
	case api.ValueTypeF64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.ParseFailed("f64 argument", err)
		}
		return v, nil
	}
	return nil, errors.InvalidInput(errors.PhaseRuntime,
		"unsupported parameter type "+api.ValueTypeName(t))
}

// DecodeResult converts a raw stack value of type t to its Go value.
// Unknown types are returned as the raw uint64.
func DecodeResult(t api.ValueType, raw uint64) any {
	switch t {
	case api.ValueTypeI32:
		return api.DecodeI32(raw)
	case api.ValueTypeI64:
		return int64(raw)
	case api.ValueTypeF32:
		return api.DecodeF32(raw)
	case api.ValueTypeF64:
		return api.DecodeF64(raw)
	}
	return raw
}

// WitType maps a core value type to the WIT type with the same Go
// representation: i32 to s32, i64 to s64, f32 and f64 to themselves.
func WitType(t api.ValueType) wit.Type {
	switch t {
	case api.ValueTypeI32:
		return wit.S32{}
	case api.ValueTypeI64:
		return wit.S64{}
	case api.ValueTypeF32:
		return wit.F32{}
	case api.ValueTypeF64:
		return wit.F64{}
	}
	return nil
}

func rangeError(t api.ValueType, v any) error {
	return errors.New(errors.PhaseRuntime, errors.KindOutOfBounds).
		Value(v).
		Detail("%v out of range for %s", v, api.ValueTypeName(t)).
		Build()
}
