package wasm

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-multierror"

	"github.com/wippyai/wasm-assembler/errors"
)

// Validate checks the module for structural validity.
// Every violation is reported; the returned error aggregates them and each
// remains reachable through errors.Is and errors.As.
func (m *Module) Validate() error {
	var result *multierror.Error
	for _, check := range []func() []error{
		m.validateTypes,
		m.validateTypeIndices,
		m.validateCodeCount,
		m.validateBodies,
		m.validateExports,
	} {
		for _, err := range check() {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = formatErrors
	return result.ErrorOrNil()
}

func (m *Module) validateTypes() []error {
	var errs []error
	for i, ft := range m.Types {
		for j, p := range ft.Params {
			if !p.Valid() {
				errs = append(errs, errors.InvalidValType(path("type", i, "param", j), byte(p)))
			}
		}
		for j, r := range ft.Results {
			if !r.Valid() {
				errs = append(errs, errors.InvalidValType(path("type", i, "result", j), byte(r)))
			}
		}
	}
	return errs
}

func (m *Module) validateTypeIndices() []error {
	var errs []error
	numTypes := len(m.Types)
	for i, decl := range m.Funcs {
		if int(decl.TypeIdx) >= numTypes {
			errs = append(errs, errors.IndexOutOfRange(errors.KindInvalidTypeIndex, path("func", i), decl.TypeIdx, numTypes))
		}
	}
	return errs
}

func (m *Module) validateCodeCount() []error {
	if len(m.Funcs) != len(m.Code) {
		return []error{errors.MismatchedCount("code section", len(m.Code), len(m.Funcs))}
	}
	return nil
}

func (m *Module) validateBodies() []error {
	var errs []error
	numFuncs := len(m.Funcs)
	for i, body := range m.Code {
		for j, local := range body.Locals {
			if !local.Type.Valid() {
				errs = append(errs, errors.InvalidValType(path("code", i, "local", j), byte(local.Type)))
			}
		}
		for j, instr := range body.Instrs {
			if isNil(instr) {
				errs = append(errs, errors.New(errors.PhaseValidate, errors.KindInvalidInput).
					Path(path("code", i, "instr", j)...).
					Detail("nil instruction").
					Build())
				continue
			}
			switch in := instr.(type) {
			case End, *End:
				errs = append(errs, errors.UnexpectedEnd(path("code", i, "instr", j)))
			case Call:
				if int(in.FuncIdx) >= numFuncs {
					errs = append(errs, errors.IndexOutOfRange(errors.KindInvalidFunctionIndex, path("code", i, "instr", j), in.FuncIdx, numFuncs))
				}
			case *Call:
				if int(in.FuncIdx) >= numFuncs {
					errs = append(errs, errors.IndexOutOfRange(errors.KindInvalidFunctionIndex, path("code", i, "instr", j), in.FuncIdx, numFuncs))
				}
			}
		}
	}
	return errs
}

func (m *Module) validateExports() []error {
	var errs []error
	numFuncs := len(m.Funcs)
	for i, exp := range m.Exports {
		if exp.Name == "" {
			errs = append(errs, errors.EmptyName(path("export", i)))
		}
		if exp.Kind == ExportFunc && int(exp.Idx) >= numFuncs {
			errs = append(errs, errors.IndexOutOfRange(errors.KindInvalidExportIndex, path("export", i), exp.Idx, numFuncs))
		}
	}
	return errs
}

// path builds element paths like ["code[1]", "instr[3]"] from name/index pairs.
// isNil reports a nil interface or a typed nil pointer such as (*Call)(nil).
func isNil(instr Instruction) bool {
	if instr == nil {
		return true
	}
	v := reflect.ValueOf(instr)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func path(parts ...any) []string {
	var out []string
	for k := 0; k+1 < len(parts); k += 2 {
		out = append(out, fmt.Sprintf("%v[%v]", parts[k], parts[k+1]))
	}
	return out
}

func formatErrors(errs []error) string {
	if len(errs) == 1 {
		return errs[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(errs))
	for _, err := range errs {
		msg += "\n\t* " + err.Error()
	}
	return msg
}
