package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	wasmasm "github.com/wippyai/wasm-assembler"
	"github.com/wippyai/wasm-assembler/engine"
	"github.com/wippyai/wasm-assembler/manifest"
	"github.com/wippyai/wasm-assembler/wasm"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <manifest>",
		Short: "Assemble a manifest into a binary module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			out := outputPath(cmd, args[0])
			return writeModule(cmd, m, out)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: manifest name with .wasm)")
	cmd.Flags().Bool("hexdump", false, "Print a hex dump of the module")
	return cmd
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write the built-in two-function sample module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeModule(cmd, wasmasm.DemoModule(), outputPath(cmd, "demo"))
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default: demo.wasm)")
	cmd.Flags().Bool("hexdump", false, "Print a hex dump of the module")
	return cmd
}

func newWatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wat [manifest]",
		Short: "Print the text form of a manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := wasmasm.DemoModule()
			if len(args) == 1 {
				var err error
				if m, err = manifest.Load(args[0]); err != nil {
					return err
				}
			}
			if err := m.Validate(); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), m.WAT())
			return nil
		},
	}
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <manifest|file.wasm> [args...]",
		Short: "Call an exported function with wazero",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadBinary(args[0])
			if err != nil {
				return err
			}

			interactive, _ := cmd.Flags().GetBool("interactive")
			if interactive {
				if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				return runInteractive(args[0], data)
			}

			list, _ := cmd.Flags().GetBool("list")
			funcName, _ := cmd.Flags().GetString("func")
			return run(cmd, data, funcName, args[1:], list)
		},
	}
	cmd.Flags().StringP("func", "f", "", "Function to call (default: the only export)")
	cmd.Flags().BoolP("list", "l", false, "List exported functions and exit")
	cmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	return cmd
}

func run(cmd *cobra.Command, data []byte, funcName string, args []string, listOnly bool) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	eng, err := engine.NewWazeroEngine(ctx)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close(ctx)

	mod, err := eng.LoadModule(ctx, data)
	if err != nil {
		return fmt.Errorf("load module: %w", err)
	}

	exports := mod.Exports()
	if listOnly {
		fmt.Fprintln(out, "Exported functions:")
		for _, sig := range exports {
			fmt.Fprintf(out, "  %s\n", sig)
		}
		return nil
	}

	if funcName == "" {
		if len(exports) != 1 {
			names := make([]string, len(exports))
			for i, sig := range exports {
				names[i] = sig.Name
			}
			return fmt.Errorf("use --func to pick one of: %s", strings.Join(names, ", "))
		}
		funcName = exports[0].Name
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return fmt.Errorf("instantiate: %w", err)
	}
	defer inst.Close(ctx)

	callArgs := make([]any, len(args))
	for i, a := range args {
		callArgs[i] = a
	}
	results, err := inst.Call(ctx, funcName, callArgs...)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}

	strs := make([]string, len(results))
	for i, r := range results {
		strs[i] = fmt.Sprint(r)
	}
	fmt.Fprintln(out, strings.Join(strs, " "))
	return nil
}

// loadBinary returns module bytes from a .wasm file or by assembling a manifest.
func loadBinary(path string) ([]byte, error) {
	if filepath.Ext(path) == ".wasm" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return data, nil
	}
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return wasmasm.Assemble(m)
}

func outputPath(cmd *cobra.Command, input string) string {
	viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	if out := viper.GetString("output"); out != "" {
		return out
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".wasm"
}

func writeModule(cmd *cobra.Command, m *wasm.Module, path string) error {
	data, err := wasmasm.Assemble(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("hexdump"); dump {
		fmt.Fprint(out, hex.Dump(data))
	}
	fmt.Fprintf(out, "%s %s (%d bytes)\n", resultStyle.Render("wrote"), path, len(data))
	return nil
}
