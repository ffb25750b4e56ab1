package wasm

import (
	"strconv"
	"strings"
)

// WAT renders the module in the WebAssembly text format.
// The output is derived from the model, not from encoded bytes, so it can
// be produced for modules that do not validate; out-of-range type indices
// render without a signature.
func (m *Module) WAT() string {
	var b strings.Builder
	b.WriteString("(module")

	for i, ft := range m.Types {
		b.WriteString("\n  (type (;")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(";) (func")
		writeSignature(&b, ft)
		b.WriteString("))")
	}

	for i, decl := range m.Funcs {
		b.WriteString("\n  (func (;")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(";) (type ")
		b.WriteString(strconv.FormatUint(uint64(decl.TypeIdx), 10))
		b.WriteByte(')')
		if int(decl.TypeIdx) < len(m.Types) {
			writeSignature(&b, m.Types[decl.TypeIdx])
		}
		if i < len(m.Code) {
			writeFuncBody(&b, &m.Code[i])
		}
		b.WriteString("\n  )")
	}

	for _, exp := range m.Exports {
		b.WriteString("\n  (export ")
		writeWATString(&b, exp.Name)
		b.WriteString(" (")
		b.WriteString(exp.Kind.String())
		b.WriteByte(' ')
		b.WriteString(strconv.FormatUint(uint64(exp.Idx), 10))
		b.WriteString("))")
	}

	b.WriteString("\n)\n")
	return b.String()
}

func writeSignature(b *strings.Builder, ft FuncType) {
	writeValTypeList(b, "param", ft.Params)
	writeValTypeList(b, "result", ft.Results)
}

func writeValTypeList(b *strings.Builder, keyword string, types []ValType) {
	if len(types) == 0 {
		return
	}
	b.WriteString(" (")
	b.WriteString(keyword)
	for _, t := range types {
		b.WriteByte(' ')
		b.WriteString(t.String())
	}
	b.WriteByte(')')
}

func writeFuncBody(b *strings.Builder, body *FuncBody) {
	if len(body.Locals) > 0 {
		b.WriteString("\n    (local")
		for _, l := range body.Locals {
			b.WriteByte(' ')
			b.WriteString(l.Type.String())
		}
		b.WriteByte(')')
	}
	for _, instr := range body.Instrs {
		if isNil(instr) {
			continue
		}
		b.WriteString("\n    ")
		b.WriteString(instr.String())
	}
}

// writeWATString writes s as a quoted text-format string. Bytes outside
// printable ASCII, quotes and backslashes are written as \hh escapes.
func writeWATString(b *strings.Builder, s string) {
	const hex = "0123456789abcdef"
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('\\')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	b.WriteByte('"')
}
