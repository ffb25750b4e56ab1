package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"go.bytecodealliance.org/wit"

	wasmasm "github.com/wippyai/wasm-assembler"
	"github.com/wippyai/wasm-assembler/engine"
	"github.com/wippyai/wasm-assembler/wasm"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.wasm")
	stdout, err := execute(t, "build", filepath.Join("testdata", "demo.yaml"), "-o", out)
	require.NoError(t, err)
	require.Contains(t, stdout, out)
	require.Contains(t, stdout, "(97 bytes)")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	want, err := wasmasm.Assemble(wasmasm.DemoModule())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestBuildCommandHexdump(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.wasm")
	stdout, err := execute(t, "build", filepath.Join("testdata", "demo.yaml"), "-o", out, "--hexdump")
	require.NoError(t, err)
	require.Contains(t, stdout, "00000000  00 61 73 6d 01 00 00 00")
}

func TestBuildCommandInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(src, []byte("types: []\nfunctions:\n  - type: 5\n"), 0o644))

	_, err := execute(t, "build", src)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid_type_index")

	_, statErr := os.Stat(filepath.Join(dir, "bad.wasm"))
	require.True(t, os.IsNotExist(statErr), "no output expected on failure")
}

func TestWriteModuleEncodesOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := wasm.Logger()
	wasm.SetLogger(zap.New(core))
	t.Cleanup(func() { wasm.SetLogger(prev) })

	cmd := newDemoCmd()
	require.NoError(t, cmd.Flags().Set("hexdump", "true"))
	var out bytes.Buffer
	cmd.SetOut(&out)

	path := filepath.Join(t.TempDir(), "once.wasm")
	require.NoError(t, writeModule(cmd, wasmasm.DemoModule(), path))
	require.Equal(t, 1, logs.FilterMessage("module encoded").Len())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, out.String(), "(97 bytes)")
	require.True(t, strings.HasPrefix(out.String(), "00000000  00 61 73 6d"))
	require.Len(t, got, 97)
}

func TestDemoCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "t4.wasm")
	_, err := execute(t, "demo", "-o", out)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, got[:8])
}

func TestOutputFromEnv(t *testing.T) {
	out := filepath.Join(t.TempDir(), "env.wasm")
	t.Setenv("WASMASM_OUTPUT", out)

	_, err := execute(t, "demo")
	require.NoError(t, err)
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestWatCommand(t *testing.T) {
	stdout, err := execute(t, "wat", filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	require.Equal(t, wasmasm.DemoModule().WAT(), stdout)
	require.Contains(t, stdout, `(export "add_two_nums" (func 1))`)
}

func TestRunCommand(t *testing.T) {
	manifestPath := filepath.Join("testdata", "demo.yaml")

	stdout, err := execute(t, "run", manifestPath, "--func", "add_two_nums", "5", "4")
	require.NoError(t, err)
	require.Equal(t, "-1\n", stdout)

	stdout, err = execute(t, "run", manifestPath, "-f", "get_const_val")
	require.NoError(t, err)
	require.Equal(t, "-10\n", stdout)

	stdout, err = execute(t, "run", manifestPath, "--list")
	require.NoError(t, err)
	require.Contains(t, stdout, "add_two_nums(i32, i32) -> i32")
	require.Contains(t, stdout, "get_const_val() -> i32")

	_, err = execute(t, "run", manifestPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--func")
}

func TestRunCommandWasmFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.wasm")
	require.NoError(t, wasmasm.WriteFile(path, wasmasm.DemoModule()))

	stdout, err := execute(t, "run", path, "--func", "add_two_nums", "1", "2")
	require.NoError(t, err)
	require.Equal(t, "-7\n", stdout)
}

func TestVerboseFlag(t *testing.T) {
	out := filepath.Join(t.TempDir(), "demo.wasm")
	_, err := execute(t, "--verbose", "demo", "-o", out)
	require.NoError(t, err)
}

func TestInteractiveModel(t *testing.T) {
	sigs := []engine.FuncSignature{}
	data, err := wasmasm.Assemble(wasmasm.DemoModule())
	require.NoError(t, err)

	m := newInteractiveModel("demo.wasm", data)
	msg := m.loadModule()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	defer loaded.eng.Close(t.Context())

	m.Update(loaded)
	require.Len(t, m.funcs, 2)
	require.Equal(t, "add_two_nums", m.funcs[0].name)
	require.IsType(t, wit.S32{}, m.funcs[0].params[0].witType)
	require.Equal(t, "s32", m.funcs[0].resultType)
	require.True(t, strings.Contains(m.View(), "add_two_nums"))

	// select add_two_nums and fill both inputs
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateInputArgs, m.state)
	require.Len(t, m.inputs, 2)
	m.inputs[0].SetValue("5")
	m.inputs[1].SetValue("4")

	res, ok := m.callFunction().(callResultMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	require.Equal(t, "-1", res.result)

	m.Update(res)
	require.Equal(t, stateShowResult, m.state)

	m.inputs[1].SetValue("x")
	res = m.callFunction().(callResultMsg)
	require.Error(t, res.err)

	require.Empty(t, describeExports(sigs))
}
