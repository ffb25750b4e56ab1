// Package wasmasm assembles WebAssembly binary modules from Go values.
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmasm/             Root package: Assemble, WriteFile and the demo module
//	├── wasm/            Module model, validation, encoder, LEB128 codec, text form
//	├── manifest/        YAML/JSON/TOML module descriptions loaded with viper
//	├── engine/          wazero-backed execution of assembled modules
//	├── errors/          Structured error types
//	└── cmd/wasmasm/     Command-line assembler with an interactive runner
//
// # Quick Start
//
// Build a module and write it to disk:
//
//	m := &wasm.Module{}
//	sig := m.AddType(wasm.FuncType{
//	    Params:  []wasm.ValType{wasm.ValI32, wasm.ValI32},
//	    Results: []wasm.ValType{wasm.ValI32},
//	})
//	add := m.AddFunc(sig, wasm.FuncBody{Instrs: []wasm.Instruction{
//	    wasm.LocalGet{Idx: 0},
//	    wasm.LocalGet{Idx: 1},
//	    wasm.I32Add{},
//	}})
//	m.ExportFunc("add", add)
//
//	if err := wasmasm.WriteFile("add.wasm", m); err != nil {
//	    log.Fatal(err)
//	}
//
// Run it:
//
//	eng, err := engine.NewWazeroEngine(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	mod, err := eng.LoadModule(ctx, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := mod.Instantiate(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := inst.Call(ctx, "add", int32(2), int32(3))
//
// # Errors
//
// Encoding validates first and fails without producing output. Errors are
// *errors.Error values categorized by phase and kind; sentinels such as
// errors.ErrInvalidTypeIndex match with the standard errors.Is.
//
// # Thread Safety
//
// Encoding is synchronous and uses a private buffer per call. A Module must
// not be mutated while it is being encoded; distinct modules may be encoded
// concurrently.
package wasmasm
