package wasm

// Module is the in-memory description of a binary module.
// Types, Funcs, Code and Exports map directly to the type, function, code
// and export sections. Funcs and Code are parallel: the Nth declaration
// pairs with the Nth body.
type Module struct {
	Types   []FuncType
	Funcs   []FuncDecl
	Code    []FuncBody
	Exports []Export
}

// AddType adds a function type and returns its index, reusing existing if equal
func (m *Module) AddType(ft FuncType) uint32 {
	for i, t := range m.Types {
		if t.Equal(ft) {
			return uint32(i)
		}
	}
	idx := uint32(len(m.Types))
	m.Types = append(m.Types, ft)
	return idx
}

// AddFunc declares a function with the given type and body and returns its index.
func (m *Module) AddFunc(typeIdx uint32, body FuncBody) uint32 {
	idx := uint32(len(m.Funcs))
	m.Funcs = append(m.Funcs, FuncDecl{TypeIdx: typeIdx})
	m.Code = append(m.Code, body)
	return idx
}

// AddExport appends an export of any kind.
func (m *Module) AddExport(name string, kind ExportKind, idx uint32) {
	m.Exports = append(m.Exports, Export{Name: name, Kind: kind, Idx: idx})
}

// ExportFunc exports function funcIdx under name.
func (m *Module) ExportFunc(name string, funcIdx uint32) {
	m.AddExport(name, ExportFunc, funcIdx)
}

// FuncType returns the signature of a function by its index
func (m *Module) FuncType(funcIdx uint32) (FuncType, bool) {
	if int(funcIdx) >= len(m.Funcs) {
		return FuncType{}, false
	}
	typeIdx := m.Funcs[funcIdx].TypeIdx
	if int(typeIdx) >= len(m.Types) {
		return FuncType{}, false
	}
	return m.Types[typeIdx], true
}

// ExportedFunc looks up a function export by name and returns its index.
func (m *Module) ExportedFunc(name string) (uint32, bool) {
	for _, e := range m.Exports {
		if e.Kind == ExportFunc && e.Name == name {
			return e.Idx, true
		}
	}
	return 0, false
}
