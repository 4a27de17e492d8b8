package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wasmcade/internal/assets"
	"github.com/vovakirdan/wasmcade/internal/config"
	"github.com/vovakirdan/wasmcade/internal/host"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [module.wasm]",
	Short: "Show how a module lines up with the host ABI",
	Long: `Compile the module without running it and list its imports, its
exports, whether it exports memory, which drawText variant it uses and which
required exports are missing. Without an argument the configured module is
inspected.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	binary, err := readModule(ctx, cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report, err := host.Describe(ctx, binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printReport(cmd.OutOrStdout(), report)
	if len(report.Missing) > 0 {
		os.Exit(1)
	}
}

func readModule(ctx context.Context, cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 1 {
		return assets.LoadModule(ctx, os.DirFS(filepath.Dir(args[0])), filepath.Base(args[0]))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dir, err := config.ExpandHome(cfg.Assets.Dir)
	if err != nil {
		return nil, err
	}
	return assets.LoadModule(ctx, os.DirFS(dir), cfg.Assets.Module)
}

func printReport(w io.Writer, r host.ABIReport) {
	fmt.Fprintln(w, headerStyle.Render("Imports:"))
	for _, sig := range r.Imports {
		fmt.Fprintf(w, "  %s\n", sig)
	}

	fmt.Fprintln(w, headerStyle.Render("Exports:"))
	for _, sig := range r.Exports {
		fmt.Fprintf(w, "  %s\n", sig)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Memory exported:  %v\n", r.HasMemory)
	fmt.Fprintf(w, "Text mode:        %s\n", r.TextMode)
	fmt.Fprintf(w, "Init takes size:  %v\n", r.InitTakesSize)

	if len(r.Missing) > 0 {
		fmt.Fprintln(w)
		for _, name := range r.Missing {
			fmt.Fprintln(w, missingStyle.Render("missing export: "+name))
		}
	}
}
