package wasm

import (
	"strings"

	"github.com/wippyai/wasm-assembler/errors"
)

// ValType is a value type tag. Only the four numeric types are modeled.
type ValType byte

func (v ValType) String() string {
	switch v {
	case ValI32:
		return "i32"
	case ValI64:
		return "i64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the known value type tags.
func (v ValType) Valid() bool {
	switch v {
	case ValI32, ValI64, ValF32, ValF64:
		return true
	}
	return false
}

// ParseValType maps a text-format mnemonic such as "i32" to its ValType.
func ParseValType(s string) (ValType, error) {
	switch strings.TrimSpace(s) {
	case "i32":
		return ValI32, nil
	case "i64":
		return ValI64, nil
	case "f32":
		return ValF32, nil
	case "f64":
		return ValF64, nil
	}
	return 0, errors.InvalidInput(errors.PhaseParse, "unknown value type "+s)
}

// FuncType represents a WebAssembly function signature with parameter and result types.
// A FuncType is treated as immutable once added to a Module.
type FuncType struct {
	Params  []ValType
	Results []ValType
}

// String renders the signature as "(i32, i32) -> i32".
func (ft FuncType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range ft.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> ")
	switch len(ft.Results) {
	case 0:
		b.WriteString("()")
	case 1:
		b.WriteString(ft.Results[0].String())
	default:
		b.WriteByte('(')
		for i, r := range ft.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Equal reports whether two signatures have identical params and results.
func (ft FuncType) Equal(other FuncType) bool {
	if len(ft.Params) != len(other.Params) || len(ft.Results) != len(other.Results) {
		return false
	}
	for i := range ft.Params {
		if ft.Params[i] != other.Params[i] {
			return false
		}
	}
	for i := range ft.Results {
		if ft.Results[i] != other.Results[i] {
			return false
		}
	}
	return true
}

// FuncDecl binds a function to its signature in the type section.
type FuncDecl struct {
	TypeIdx uint32
}

// Local is a declared local variable. Parameters are implicit locals
// 0..n-1 and are not listed here.
type Local struct {
	Type ValType
}

// FuncBody holds a function's declared locals and its instruction stream.
// The terminating end is appended by the encoder. Instructions held by
// pointer must be non-nil.
type FuncBody struct {
	Locals []Local
	Instrs []Instruction
}

// ExportKind identifies the index space an export refers to.
type ExportKind byte

func (k ExportKind) String() string {
	switch k {
	case ExportFunc:
		return "func"
	case ExportTable:
		return "table"
	case ExportMemory:
		return "memory"
	case ExportGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Export describes an exported item.
// Names are not required to be unique.
type Export struct {
	Name string
	Kind ExportKind
	Idx  uint32
}
