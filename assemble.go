package wasmasm

import (
	"fmt"
	"os"

	"github.com/wippyai/wasm-assembler/wasm"
)

// Assemble validates m and returns its binary encoding.
func Assemble(m *wasm.Module) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("assemble: nil module")
	}
	return m.Encode()
}

// WriteFile assembles m and writes the result to path with mode 0644.
// Nothing is written if assembly fails.
func WriteFile(path string, m *wasm.Module) error {
	data, err := Assemble(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DemoModule returns the two-function sample module:
//
//	get_const_val() -> i32        returns -10
//	add_two_nums(a, b i32) -> i32 returns a + b + get_const_val()
func DemoModule() *wasm.Module {
	m := &wasm.Module{}
	constType := m.AddType(wasm.FuncType{Results: []wasm.ValType{wasm.ValI32}})
	addType := m.AddType(wasm.FuncType{
		Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
		Results: []wasm.ValType{wasm.ValI32},
	})

	getConst := m.AddFunc(constType, wasm.FuncBody{
		Instrs: []wasm.Instruction{wasm.I32Const{Value: -10}},
	})
	addTwo := m.AddFunc(addType, wasm.FuncBody{
		Instrs: []wasm.Instruction{
			wasm.LocalGet{Idx: 0},
			wasm.LocalGet{Idx: 1},
			wasm.I32Add{},
			wasm.Call{FuncIdx: getConst},
			wasm.I32Add{},
		},
	})

	m.ExportFunc("get_const_val", getConst)
	m.ExportFunc("add_two_nums", addTwo)
	return m
}
