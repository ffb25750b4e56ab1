package wasm

import (
	"go.uber.org/zap"

	"github.com/wippyai/wasm-assembler/wasm/internal/binary"
)

// Encode validates the module and encodes it to WebAssembly binary format.
// On a validation or encoding failure no bytes are returned. The module is
// not modified, so repeated calls produce identical output.
func (m *Module) Encode() ([]byte, error) {
	if err := m.Validate(); err != nil {
		Logger().Debug("module validation failed", zap.Error(err))
		return nil, err
	}

	w := binary.NewSink()
	w.Append(Magic[:])
	w.Append(Version[:])

	sections := []struct {
		write func(w *binary.Sink) error
		name  string
		id    byte
	}{
		{m.writeTypeSection, "type", SectionType},
		{m.writeFunctionSection, "function", SectionFunction},
		{m.writeExportSection, "export", SectionExport},
		{m.writeCodeSection, "code", SectionCode},
	}
	for _, sec := range sections {
		start := w.Offset()
		if err := w.Section(sec.id, func() error { return sec.write(w) }); err != nil {
			return nil, err
		}
		Logger().Debug("section encoded",
			zap.String("section", sec.name),
			zap.Int("offset", start),
			zap.Int("size", w.Offset()-start-1-binary.PlaceholderWidth))
	}

	out := w.Finish()
	Logger().Debug("module encoded",
		zap.Int("types", len(m.Types)),
		zap.Int("funcs", len(m.Funcs)),
		zap.Int("exports", len(m.Exports)),
		zap.Int("bytes", len(out)))
	return out, nil
}

// MustEncode is like Encode but panics on error.
func (m *Module) MustEncode() []byte {
	b, err := m.Encode()
	if err != nil {
		panic(err)
	}
	return b
}

func (m *Module) writeTypeSection(w *binary.Sink) error {
	w.WriteU32(uint32(len(m.Types)))
	for _, ft := range m.Types {
		w.Byte(FuncTypeByte)
		writeValTypes(w, ft.Params)
		writeValTypes(w, ft.Results)
	}
	return nil
}

func (m *Module) writeFunctionSection(w *binary.Sink) error {
	w.WriteU32(uint32(len(m.Funcs)))
	for _, decl := range m.Funcs {
		w.WriteU32(decl.TypeIdx)
	}
	return nil
}

func (m *Module) writeExportSection(w *binary.Sink) error {
	w.WriteU32(uint32(len(m.Exports)))
	for _, exp := range m.Exports {
		w.WriteName(exp.Name)
		w.Byte(byte(exp.Kind))
		w.WriteU32(exp.Idx)
	}
	return nil
}

func (m *Module) writeCodeSection(w *binary.Sink) error {
	w.WriteU32(uint32(len(m.Code)))
	for i := range m.Code {
		body := &m.Code[i]
		if err := w.Region(func() error {
			writeBody(w, body)
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeBody(w *binary.Sink, body *FuncBody) {
	groups := localGroups(body.Locals)
	w.WriteU32(uint32(len(groups)))
	for _, g := range groups {
		w.WriteU32(g.count)
		w.Byte(byte(g.typ))
	}
	var code []byte
	for _, instr := range body.Instrs {
		code = AppendInstruction(code, instr)
	}
	w.Append(code)
	w.Byte(OpEnd)
}

type localGroup struct {
	count uint32
	typ   ValType
}

// localGroups run-length encodes consecutive locals of the same type.
func localGroups(locals []Local) []localGroup {
	var groups []localGroup
	for _, l := range locals {
		if n := len(groups); n > 0 && groups[n-1].typ == l.Type {
			groups[n-1].count++
			continue
		}
		groups = append(groups, localGroup{count: 1, typ: l.Type})
	}
	return groups
}

func writeValTypes(w *binary.Sink, types []ValType) {
	w.WriteU32(uint32(len(types)))
	for _, t := range types {
		w.Byte(byte(t))
	}
}
