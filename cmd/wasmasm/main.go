package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-assembler/engine"
	"github.com/wippyai/wasm-assembler/wasm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wasmasm",
		Short:         "Assemble WebAssembly modules from manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger()
		},
	}

	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	root.PersistentFlags().String("config", "", "Config file (yaml, json or toml)")
	viper.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))

	root.AddCommand(
		newBuildCmd(),
		newDemoCmd(),
		newWatCmd(),
		newRunCmd(),
	)
	return root
}

func initConfig() error {
	viper.SetEnvPrefix("WASMASM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path := viper.GetString("config"); path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func initLogger() error {
	var (
		log *zap.Logger
		err error
	)
	if viper.GetBool("verbose") {
		log, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		log, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	wasm.SetLogger(log)
	engine.SetLogger(log)
	return nil
}
