// wasmcade runs a pre-built WebAssembly game module in the terminal or a
// desktop window.
//
// Usage:
//
//	wasmcade run                 - Run the configured game module
//	wasmcade list                - List available frontends
//	wasmcade inspect [module]    - Show how a module lines up with the host ABI
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.wasmcade/config.yaml, ./wasmcade.yaml)
//	--assets <dir>   - Directory the module and font paths are relative to
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import frontends to register them
	_ "github.com/vovakirdan/wasmcade/internal/platform/tui"
	_ "github.com/vovakirdan/wasmcade/internal/platform/window"
)

var (
	// Global flags
	flagConfig string
	flagAssets string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wasmcade",
	Short: "wasmcade - Run WebAssembly games in your terminal",
	Long: `wasmcade hosts a pre-built WebAssembly game module. The module gets
keyboard and pointer queries plus rectangle, circle and text drawing;
the host drives it with one render and one update per display refresh.

Available commands:
  run      - Run the configured game module
  list     - Show all available frontends
  inspect  - Show a module's imports, exports and text mode

Examples:
  wasmcade run
  wasmcade run --assets ./build --fps 30
  wasmcade run --frontend window
  wasmcade inspect assets/game.wasm`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory (overrides assets.dir)")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
}
