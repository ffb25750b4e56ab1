// Package wasm assembles WebAssembly binary modules from an in-memory model.
//
// A Module holds function types, function declarations, function bodies and
// exports. Encode validates the model and serializes it into the type,
// function, export and code sections, in that order, behind the standard
// preamble.
//
// # Building a Module
//
//	m := &wasm.Module{}
//	constType := m.AddType(wasm.FuncType{Results: []wasm.ValType{wasm.ValI32}})
//	get := m.AddFunc(constType, wasm.FuncBody{
//	    Instrs: []wasm.Instruction{wasm.I32Const{Value: -10}},
//	})
//	m.ExportFunc("get_const_val", get)
//
//	data, err := m.Encode()
//
// The terminating end instruction is appended by the encoder; bodies must not
// contain one.
//
// # Length Prefixes
//
// Section and function body sizes are written as 4-byte fixed-width LEB128
// slots. The encoder reserves the slot, emits the content, then patches the
// slot in place, so the output never needs to be shifted or measured twice.
// The padded form is legal in the binary format and decodes with any
// standard LEB128 reader.
//
// # Validation
//
// Validate checks index references (types, call targets, exports), the
// declaration/body count, value type tags and export names. All violations
// are reported together; each one is an *errors.Error that matches its
// sentinel via errors.Is:
//
//	if errors.Is(err, asmerrors.ErrInvalidTypeIndex) { ... }
//
// Encode never returns partial output on failure.
//
// # Instructions
//
// Instructions implement the Instruction interface. The built-in set covers
// constants, local access, integer arithmetic, call, drop and return.
// ParseInstruction accepts the text-format mnemonics ("i32.const -10",
// "local.get 0", "call 1").
//
// # Text Form
//
// Module.WAT renders the model in the WebAssembly text format for inspection.
//
// # LEB128
//
// The package exposes the LEB128 codec used by the encoder: Encode*, Append*,
// Write* and Read*/Decode* variants for signed and unsigned 32/64-bit values,
// and EncodeLEB128uFixed for padded fixed-width slots.
package wasm
