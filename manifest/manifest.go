package manifest

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/wippyai/wasm-assembler/errors"
	"github.com/wippyai/wasm-assembler/wasm"
)

// Manifest is the file form of a module.
type Manifest struct {
	Types     []TypeSpec     `mapstructure:"types"`
	Functions []FunctionSpec `mapstructure:"functions"`
	Exports   []ExportSpec   `mapstructure:"exports"`
}

// TypeSpec describes a function signature.
type TypeSpec struct {
	Params  []string `mapstructure:"params"`
	Results []string `mapstructure:"results"`
}

// FunctionSpec describes a function declaration and its body.
type FunctionSpec struct {
	Locals []string `mapstructure:"locals"`
	Body   []string `mapstructure:"body"`
	Type   uint32   `mapstructure:"type"`
}

// ExportSpec describes an export. Func is shorthand for kind func.
type ExportSpec struct {
	Func  *uint32 `mapstructure:"func"`
	Name  string  `mapstructure:"name"`
	Kind  string  `mapstructure:"kind"`
	Index uint32  `mapstructure:"index"`
}

// Formats lists the accepted manifest formats.
var Formats = []string{"yaml", "yml", "json", "toml"}

// Load reads the manifest at path. The format is taken from the file extension.
func Load(path string) (*wasm.Module, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if !supported(format) {
		return nil, errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("unsupported manifest format %q (want one of %s)", format, strings.Join(Formats, ", ")))
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Load("read manifest "+path, err)
	}
	return fromViper(v)
}

// Decode reads a manifest in the given format from r.
func Decode(r io.Reader, format string) (*wasm.Module, error) {
	if !supported(format) {
		return nil, errors.InvalidInput(errors.PhaseLoad,
			fmt.Sprintf("unsupported manifest format %q (want one of %s)", format, strings.Join(Formats, ", ")))
	}

	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, errors.Load("read manifest", err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*wasm.Module, error) {
	var man Manifest
	if err := v.Unmarshal(&man); err != nil {
		return nil, errors.Load("decode manifest", err)
	}
	return man.Module()
}

// Module converts the manifest to a module. Mnemonics are resolved here;
// index ranges are checked when the module is encoded.
func (man *Manifest) Module() (*wasm.Module, error) {
	m := &wasm.Module{}

	for i, ts := range man.Types {
		params, err := parseValTypes("params", ts.Params)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("types[%d]", i))
		}
		results, err := parseValTypes("results", ts.Results)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("types[%d]", i))
		}
		m.Types = append(m.Types, wasm.FuncType{Params: params, Results: results})
	}

	for i, fs := range man.Functions {
		localTypes, err := parseValTypes("locals", fs.Locals)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("functions[%d]", i))
		}
		locals := make([]wasm.Local, len(localTypes))
		for j, t := range localTypes {
			locals[j] = wasm.Local{Type: t}
		}
		instrs, err := wasm.ParseInstructions(fs.Body)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("functions[%d]", i))
		}
		m.AddFunc(fs.Type, wasm.FuncBody{Locals: locals, Instrs: instrs})
	}

	for i, es := range man.Exports {
		kind, idx, err := es.resolve()
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("exports[%d]", i))
		}
		m.AddExport(es.Name, kind, idx)
	}

	return m, nil
}

func (es ExportSpec) resolve() (wasm.ExportKind, uint32, error) {
	if es.Func != nil {
		if es.Kind != "" && es.Kind != "func" {
			return 0, 0, errors.InvalidInput(errors.PhaseParse, "func is only valid for kind func, got "+es.Kind)
		}
		return wasm.ExportFunc, *es.Func, nil
	}
	switch es.Kind {
	case "", "func":
		return wasm.ExportFunc, es.Index, nil
	case "table":
		return wasm.ExportTable, es.Index, nil
	case "memory":
		return wasm.ExportMemory, es.Index, nil
	case "global":
		return wasm.ExportGlobal, es.Index, nil
	}
	return 0, 0, errors.InvalidInput(errors.PhaseParse, "unknown export kind "+es.Kind)
}

func parseValTypes(field string, names []string) ([]wasm.ValType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]wasm.ValType, len(names))
	for i, name := range names {
		t, err := wasm.ParseValType(name)
		if err != nil {
			return nil, withPath(err, fmt.Sprintf("%s[%d]", field, i))
		}
		out[i] = t
	}
	return out, nil
}

// withPath prefixes the element path of a structured error.
func withPath(err error, path ...string) error {
	if e, ok := err.(*errors.Error); ok {
		e.Path = append(path, e.Path...)
	}
	return err
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
