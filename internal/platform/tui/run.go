package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/host"
	"github.com/vovakirdan/wasmcade/internal/registry"
)

// ID is the registry identifier of the terminal frontend.
const ID = "tui"

func init() {
	registry.Register(ID, func() registry.Frontend { return Frontend{} })
}

// Frontend presents the surface with half-block cells in the terminal.
type Frontend struct{}

// ID returns the frontend identifier.
func (Frontend) ID() string { return ID }

// Title returns the display name.
func (Frontend) Title() string { return "Terminal (half-block cells)" }

// Viewport returns the surface size for the current terminal.
func (Frontend) Viewport(cfg core.RuntimeConfig) core.Size {
	cols, rows := terminalSize()
	return SurfaceSize(cols, rows, cfg.CellScale)
}

// Run starts the Bubble Tea program and blocks until quit or a host fault.
func (Frontend) Run(ctx context.Context, h *host.Host, cfg core.RuntimeConfig) error {
	cols, rows := terminalSize()
	model := NewModel(h, cfg, cols, rows)
	if err := model.Start(); err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer moves without a button held
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}

// terminalSize returns the terminal dimensions, defaulting to 80x24.
func terminalSize() (cols, rows int) {
	cols, rows = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cols, rows = w, h
	}
	return cols, rows
}
