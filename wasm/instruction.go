package wasm

import (
	"bytes"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/wasm-assembler/errors"
)

// Opcode constants are defined in constants.go

// Instruction is a single instruction in a function body.
// New variants only need an opcode and an immediate encoding; the body
// encoder concatenates them without further knowledge.
type Instruction interface {
	// Opcode returns the instruction's opcode byte.
	Opcode() byte
	// AppendImmediate appends the encoded immediate, if any, to b.
	AppendImmediate(b []byte) []byte
	// String returns the text-format mnemonic and operands.
	String() string
}

// I32Const pushes a 32-bit integer constant.
type I32Const struct {
	Value int32
}

func (I32Const) Opcode() byte { return OpI32Const }
func (i I32Const) AppendImmediate(b []byte) []byte { return AppendLEB128s(b, i.Value) }
func (i I32Const) String() string { return "i32.const " + strconv.FormatInt(int64(i.Value), 10) }

// I64Const pushes a 64-bit integer constant.
type I64Const struct {
	Value int64
}

func (I64Const) Opcode() byte { return OpI64Const }
func (i I64Const) AppendImmediate(b []byte) []byte { return AppendLEB128s64(b, i.Value) }
func (i I64Const) String() string { return "i64.const " + strconv.FormatInt(i.Value, 10) }

// F32Const pushes a 32-bit float constant, encoded as 4 little-endian bytes.
type F32Const struct {
	Value float32
}

func (F32Const) Opcode() byte { return OpF32Const }
func (i F32Const) AppendImmediate(b []byte) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(i.Value))
}
func (i F32Const) String() string {
	return "f32.const " + strconv.FormatFloat(float64(i.Value), 'g', -1, 32)
}

// F64Const pushes a 64-bit float constant, encoded as 8 little-endian bytes.
type F64Const struct {
	Value float64
}

func (F64Const) Opcode() byte { return OpF64Const }
func (i F64Const) AppendImmediate(b []byte) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(i.Value))
}
func (i F64Const) String() string {
	return "f64.const " + strconv.FormatFloat(i.Value, 'g', -1, 64)
}

// LocalGet pushes the value of a local (parameters come first).
type LocalGet struct {
	Idx uint32
}

func (LocalGet) Opcode() byte { return OpLocalGet }
func (i LocalGet) AppendImmediate(b []byte) []byte { return AppendLEB128u(b, i.Idx) }
func (i LocalGet) String() string { return "local.get " + strconv.FormatUint(uint64(i.Idx), 10) }

// LocalSet pops a value into a local.
type LocalSet struct {
	Idx uint32
}

func (LocalSet) Opcode() byte { return OpLocalSet }
func (i LocalSet) AppendImmediate(b []byte) []byte { return AppendLEB128u(b, i.Idx) }
func (i LocalSet) String() string { return "local.set " + strconv.FormatUint(uint64(i.Idx), 10) }

// LocalTee stores into a local and keeps the value on the stack.
type LocalTee struct {
	Idx uint32
}

func (LocalTee) Opcode() byte { return OpLocalTee }
func (i LocalTee) AppendImmediate(b []byte) []byte { return AppendLEB128u(b, i.Idx) }
func (i LocalTee) String() string { return "local.tee " + strconv.FormatUint(uint64(i.Idx), 10) }

// Call invokes a function by index.
type Call struct {
	FuncIdx uint32
}

func (Call) Opcode() byte { return OpCall }
func (i Call) AppendImmediate(b []byte) []byte { return AppendLEB128u(b, i.FuncIdx) }
func (i Call) String() string { return "call " + strconv.FormatUint(uint64(i.FuncIdx), 10) }

// simple is an instruction without immediates.
type simple struct{}

func (simple) AppendImmediate(b []byte) []byte { return b }

// I32Add adds two i32 values.
type I32Add struct{ simple }

func (I32Add) Opcode() byte { return OpI32Add }
func (I32Add) String() string { return "i32.add" }

// I32Sub subtracts two i32 values.
type I32Sub struct{ simple }

func (I32Sub) Opcode() byte { return OpI32Sub }
func (I32Sub) String() string { return "i32.sub" }

// I32Mul multiplies two i32 values.
type I32Mul struct{ simple }

func (I32Mul) Opcode() byte { return OpI32Mul }
func (I32Mul) String() string { return "i32.mul" }

// I64Add adds two i64 values.
type I64Add struct{ simple }

func (I64Add) Opcode() byte { return OpI64Add }
func (I64Add) String() string { return "i64.add" }

// Drop discards the top of the stack.
type Drop struct{ simple }

func (Drop) Opcode() byte { return OpDrop }
func (Drop) String() string { return "drop" }

// Return exits the current function.
type Return struct{ simple }

func (Return) Opcode() byte { return OpReturn }
func (Return) String() string { return "return" }

// End terminates a body. The encoder appends it once per body; it must
// not appear in FuncBody.Instrs.
type End struct{ simple }

func (End) Opcode() byte { return OpEnd }
func (End) String() string { return "end" }

// AppendInstruction appends the opcode and immediate of instr to b.
func AppendInstruction(b []byte, instr Instruction) []byte {
	b = append(b, instr.Opcode())
	return instr.AppendImmediate(b)
}

// EncodeInstructionsTo writes instruction bytes to a buffer
func EncodeInstructionsTo(buf *bytes.Buffer, instrs []Instruction) {
	buf.Write(EncodeInstructions(instrs))
}

// EncodeInstructions encodes instructions to bytes
func EncodeInstructions(instrs []Instruction) []byte {
	var b []byte
	for _, instr := range instrs {
		b = AppendInstruction(b, instr)
	}
	return b
}

// ParseInstruction parses the text form of an instruction, such as
// "i32.const -10", "local.get 0" or "call 1".
func ParseInstruction(s string) (Instruction, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "empty instruction")
	}
	op, args := fields[0], fields[1:]

	switch op {
	case "i32.add":
		return I32Add{}, noOperands(op, args)
	case "i32.sub":
		return I32Sub{}, noOperands(op, args)
	case "i32.mul":
		return I32Mul{}, noOperands(op, args)
	case "i64.add":
		return I64Add{}, noOperands(op, args)
	case "drop":
		return Drop{}, noOperands(op, args)
	case "return":
		return Return{}, noOperands(op, args)
	case "end":
		return End{}, noOperands(op, args)
	}

	if len(args) != 1 {
		return nil, errors.InvalidInput(errors.PhaseParse, op+" takes exactly one operand")
	}
	arg := args[0]

	switch op {
	case "i32.const":
		v, err := strconv.ParseInt(arg, 0, 32)
		if err != nil {
			return nil, errors.ParseFailed(op, err)
		}
		return I32Const{Value: int32(v)}, nil
	case "i64.const":
		v, err := strconv.ParseInt(arg, 0, 64)
		if err != nil {
			return nil, errors.ParseFailed(op, err)
		}
		return I64Const{Value: v}, nil
	case "f32.const":
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return nil, errors.ParseFailed(op, err)
		}
		return F32Const{Value: float32(v)}, nil
	case "f64.const":
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, errors.ParseFailed(op, err)
		}
		return F64Const{Value: v}, nil
	case "local.get", "local.set", "local.tee", "call":
		v, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return nil, errors.ParseFailed(op, err)
		}
		idx := uint32(v)
		switch op {
		case "local.get":
			return LocalGet{Idx: idx}, nil
		case "local.set":
			return LocalSet{Idx: idx}, nil
		case "local.tee":
			return LocalTee{Idx: idx}, nil
		default:
			return Call{FuncIdx: idx}, nil
		}
	}

	return nil, errors.InvalidInput(errors.PhaseParse, "unknown instruction "+op)
}

// ParseInstructions parses one instruction per entry.
func ParseInstructions(lines []string) ([]Instruction, error) {
	instrs := make([]Instruction, 0, len(lines))
	for i, line := range lines {
		instr, err := ParseInstruction(line)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{"instr[" + strconv.Itoa(i) + "]"}, e.Path...)
			}
			return nil, err
		}
		instrs = append(instrs, instr)
	}
	return instrs, nil
}

func noOperands(op string, args []string) error {
	if len(args) != 0 {
		return errors.InvalidInput(errors.PhaseParse, op+" takes no operands")
	}
	return nil
}
