// Package window provides the desktop window frontend, built on Ebitengine.
// The Ebitengine implementation is compiled only with the ebiten build tag;
// other builds register a frontend that reports itself unavailable.
package window

import (
	"context"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/host"
	"github.com/vovakirdan/wasmcade/internal/registry"
)

// ID is the registry identifier of the window frontend.
const ID = "window"

func init() {
	registry.Register(ID, func() registry.Frontend { return Frontend{} })
}

// Frontend presents the surface 1:1 in a resizable window.
type Frontend struct{}

// ID returns the frontend identifier.
func (Frontend) ID() string { return ID }

// Title returns the display name.
func (Frontend) Title() string {
	if !available {
		return "Desktop window (rebuild with -tags ebiten)"
	}
	return "Desktop window"
}

// Viewport returns the initial window size.
func (Frontend) Viewport(cfg core.RuntimeConfig) core.Size {
	return core.NewSize(cfg.WindowW, cfg.WindowH)
}

// Run opens the window and blocks until it is closed, ctx is cancelled or
// the host halts on a fault.
func (Frontend) Run(ctx context.Context, h *host.Host, cfg core.RuntimeConfig) error {
	return run(ctx, h, cfg)
}
