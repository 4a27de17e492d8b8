package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wasmcade/internal/assets"
	"github.com/vovakirdan/wasmcade/internal/bridge"
	"github.com/vovakirdan/wasmcade/internal/config"
	"github.com/vovakirdan/wasmcade/internal/host"
	"github.com/vovakirdan/wasmcade/internal/platform/tui"
	"github.com/vovakirdan/wasmcade/internal/registry"
)

var (
	flagFrontend string
	flagFPS      int
	flagTextMode string
	flagLogFile  string
	flagLogLevel string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the game module",
	Long: `Load the game module and font, boot the module and run its tick loop
until you quit.

Controls (terminal):
  Ctrl+C     - Quit
  Ctrl+S     - Save a PNG screenshot to ~/.wasmcade/screenshots

Text modes:
  auto        - Pick from the module's platformDrawText signature
  positioned  - drawText(x, y, size, text, color)
  centered    - drawText(width, height, text)

Examples:
  wasmcade run
  wasmcade run --assets ./build --fps 30
  wasmcade run --frontend window --log-level debug
  wasmcade run --log-file /tmp/wasmcade.log`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagFrontend, "frontend", tui.ID, "Frontend to present the game with (see 'wasmcade list')")
	runCmd.Flags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	runCmd.Flags().StringVar(&flagTextMode, "text-mode", "auto", "drawText ABI: auto, positioned, centered")
	runCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	runCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg, flagFrontend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runGame(ctx, cfg, flagFrontend, logger); err != nil {
		logger.Error("run failed", "error", err)
		stop()
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if flags.Changed("fps") {
		cfg.Runtime.FPS = flagFPS
	}
	if flags.Changed("text-mode") {
		cfg.Runtime.TextMode = flagTextMode
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the process logger. The terminal frontend owns stderr's
// screen, so without a log file its logs are discarded. cfg must be validated.
func newLogger(cfg config.Config, frontend string) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case cfg.Log.File != "":
		path, err := config.ExpandHome(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case frontend == tui.ID:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "wasmcade",
		Level:           cfg.LogLevel(),
	})
	return logger, closeFn, nil
}

// runGame loads the assets, boots the module and hands the host to the
// frontend until it returns.
func runGame(ctx context.Context, cfg config.Config, frontendID string, logger *log.Logger) error {
	fe, err := registry.Create(frontendID)
	if err != nil {
		return err
	}

	rt, err := cfg.RuntimeConfig()
	if err != nil {
		return err
	}

	dir, err := config.ExpandHome(cfg.Assets.Dir)
	if err != nil {
		return err
	}

	logger.Info("loading assets", "dir", dir, "module", cfg.Assets.Module, "font", cfg.Assets.Font)
	bundle, err := assets.Load(ctx, os.DirFS(dir), assets.Paths{
		Module: cfg.Assets.Module,
		Font:   cfg.Assets.Font,
	})
	if err != nil {
		return err
	}

	h := host.New(bundle.Fonts, host.Options{
		Logger: logger,
		Bridge: bridge.Options{
			CenteredSize:  rt.CenteredSize,
			CenteredColor: rt.CenteredColor,
		},
	})
	defer func() {
		if err := h.Close(context.Background()); err != nil {
			logger.Warn("close module", "error", err)
		}
	}()

	if err := h.Boot(ctx, host.Instantiator(bundle.Module, rt.TextMode), fe.Viewport(rt)); err != nil {
		return err
	}

	logger.Info("starting frontend", "frontend", fe.ID(), "fps", rt.TickRate)
	return fe.Run(ctx, h, rt)
}
