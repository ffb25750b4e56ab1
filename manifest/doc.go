// Package manifest loads module descriptions from YAML, JSON or TOML files.
//
// A manifest lists function types, functions and exports. Value types use
// their text-format names and bodies use one instruction per entry:
//
//	types:
//	  - params: [i32, i32]
//	    results: [i32]
//	functions:
//	  - type: 0
//	    locals: [i32]
//	    body: ["local.get 0", "local.get 1", "i32.add"]
//	exports:
//	  - name: add
//	    func: 0
//
// Exports of other kinds set kind (table, memory, global) and index instead
// of func. Load reads a file and infers the format from its extension;
// Decode reads any io.Reader in an explicit format. Both return a
// *wasm.Module ready for encoding. Structural checks such as index ranges
// are left to wasm.Module.Validate.
package manifest
