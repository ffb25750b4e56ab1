// Package engine runs assembled WebAssembly modules on wazero.
//
// It is the execution side of the assembler: a module produced by
// wasm.Module.Encode can be compiled, inspected and called without leaving
// the process.
//
// # Architecture
//
// The engine package provides three main types:
//
//	WazeroEngine   - Creates and manages a wazero runtime
//	WazeroModule   - A compiled module with its exported function signatures
//	WazeroInstance - An instantiated module whose exports can be called
//
// # Calling Exports
//
// Call converts Go arguments to the export's core value types and decodes
// the results back:
//
//	Core Type   Accepted Go Arguments                     Result
//	────────────────────────────────────────────────────────────────
//	i32         int32, uint32, int, int64, string          int32
//	i64         int64, int, int32, uint64, string          int64
//	f32         float32, float64, string                   float32
//	f64         float64, float32, string                   float64
//
// String arguments are parsed according to the parameter type, which lets
// command-line input be passed through unchanged. Integers outside the
// parameter's range are rejected.
//
// CallRaw skips conversion and works on wazero's uint64 stack encoding.
//
// # Lifecycle
//
//	eng, _ := engine.NewWazeroEngine(ctx)
//	defer eng.Close(ctx)
//
//	mod, _ := eng.LoadModule(ctx, data)
//	inst, _ := mod.Instantiate(ctx)
//	defer inst.Close(ctx)
//
//	results, _ := inst.Call(ctx, "add_two_nums", int32(5), int32(4))
//
// Closing the engine closes every module and instance created from it.
//
// # Thread Safety
//
// WazeroEngine and WazeroModule are safe for concurrent use. WazeroInstance
// is not; use one instance per goroutine.
package engine
