package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-assembler/errors"
)

// WazeroEngine compiles and instantiates modules on a wazero runtime
type WazeroEngine struct {
	runtime wazero.Runtime
}

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// CloseOnContextDone stops running calls when their context is cancelled.
	CloseOnContextDone bool

	// Interpreter selects wazero's interpreter instead of the compiler.
	Interpreter bool
}

// NewWazeroEngine creates a new wazero-based engine
func NewWazeroEngine(ctx context.Context) (*WazeroEngine, error) {
	return NewWazeroEngineWithConfig(ctx, nil)
}

// NewWazeroEngineWithConfig creates a new engine with custom configuration
func NewWazeroEngineWithConfig(ctx context.Context, cfg *Config) (*WazeroEngine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	if cfg != nil {
		if cfg.Interpreter {
			runtimeCfg = wazero.NewRuntimeConfigInterpreter()
		}
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.CloseOnContextDone {
			runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
		}
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)
	return &WazeroEngine{runtime: runtime}, nil
}

// LoadModule compiles a binary module and records its exported functions.
func (e *WazeroEngine) LoadModule(ctx context.Context, wasmBytes []byte) (*WazeroModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("compile failed: %w", err)
	}

	defs := compiled.ExportedFunctions()
	exports := make([]FuncSignature, 0, len(defs))
	for name, def := range defs {
		exports = append(exports, FuncSignature{
			Name:    name,
			Params:  def.ParamTypes(),
			Results: def.ResultTypes(),
		})
	}
	sort.Slice(exports, func(i, j int) bool { return exports[i].Name < exports[j].Name })

	Logger().Debug("module compiled",
		zap.Int("bytes", len(wasmBytes)),
		zap.Int("exports", len(exports)))

	return &WazeroModule{
		runtime:  e.runtime,
		compiled: compiled,
		exports:  exports,
	}, nil
}

// Close releases the runtime and everything compiled or instantiated on it.
func (e *WazeroEngine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// FuncSignature describes an exported function in core value types
type FuncSignature struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// String renders the signature as "name(i32, i32) -> i32".
func (s FuncSignature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(p))
	}
	b.WriteByte(')')
	for i, r := range s.Results {
		if i == 0 {
			b.WriteString(" -> ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(api.ValueTypeName(r))
	}
	return b.String()
}

// WazeroModule is a compiled WASM module
type WazeroModule struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
	exports  []FuncSignature
}

// Exports returns the exported functions sorted by name.
func (m *WazeroModule) Exports() []FuncSignature {
	out := make([]FuncSignature, len(m.exports))
	copy(out, m.exports)
	return out
}

// Export looks up an exported function by name.
func (m *WazeroModule) Export(name string) (FuncSignature, bool) {
	for _, sig := range m.exports {
		if sig.Name == name {
			return sig, true
		}
	}
	return FuncSignature{}, false
}

// Instantiate creates a new instance of the module.
// Instances are anonymous so a module can be instantiated any number of times.
func (m *WazeroModule) Instantiate(ctx context.Context) (*WazeroInstance, error) {
	instance, err := m.runtime.InstantiateModule(ctx, m.compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("instantiate failed: %w", err)
	}
	return &WazeroInstance{
		module:    m,
		instance:  instance,
		funcCache: make(map[string]api.Function),
	}, nil
}

// Close releases the compiled module.
func (m *WazeroModule) Close(ctx context.Context) error {
	return m.compiled.Close(ctx)
}

// WazeroInstance is an instantiated module
type WazeroInstance struct {
	module    *WazeroModule
	instance  api.Module
	funcCache map[string]api.Function
}

func (i *WazeroInstance) function(name string) (api.Function, FuncSignature, error) {
	sig, ok := i.module.Export(name)
	if !ok {
		return nil, FuncSignature{}, errors.NotFound(errors.PhaseRuntime, "export", name)
	}
	fn, ok := i.funcCache[name]
	if !ok {
		fn = i.instance.ExportedFunction(name)
		if fn == nil {
			return nil, FuncSignature{}, errors.NotFound(errors.PhaseRuntime, "export", name)
		}
		i.funcCache[name] = fn
	}
	return fn, sig, nil
}

// Call invokes an exported function, converting args to its parameter
// types and decoding the results.
func (i *WazeroInstance) Call(ctx context.Context, name string, args ...any) ([]any, error) {
	fn, sig, err := i.function(name)
	if err != nil {
		return nil, err
	}
	if len(args) != len(sig.Params) {
		return nil, errors.InvalidInput(errors.PhaseRuntime,
			fmt.Sprintf("%s takes %d arguments, got %d", sig, len(sig.Params), len(args)))
	}

	params := make([]uint64, len(args))
	for idx, arg := range args {
		params[idx], err = EncodeArg(sig.Params[idx], arg)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, idx, err)
		}
	}

	raw, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindRuntime, err, "call "+name)
	}
	Logger().Debug("export called", zap.String("func", name), zap.Int("results", len(raw)))

	results := make([]any, len(raw))
	for idx, v := range raw {
		results[idx] = DecodeResult(sig.Results[idx], v)
	}
	return results, nil
}

// CallRaw invokes an exported function with already-encoded stack values.
func (i *WazeroInstance) CallRaw(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn, _, err := i.function(name)
	if err != nil {
		return nil, err
	}
	raw, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRuntime, errors.KindRuntime, err, "call "+name)
	}
	return raw, nil
}

// Close releases the instance.
func (i *WazeroInstance) Close(ctx context.Context) error {
	return i.instance.Close(ctx)
}
