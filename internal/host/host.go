// Package host loads a game module, binds its imports and drives its
// lifecycle: init, resize, and a perpetual render-then-update tick.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wasmcade/internal/bridge"
	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/surface"
)

// State is the host lifecycle state.
type State int

const (
	// StateLoading covers module fetch and instantiation.
	StateLoading State = iota
	// StateReady means init and the initial resize have completed.
	StateReady
	// StateRunning means the tick loop has started.
	StateRunning
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Options configures a Host.
type Options struct {
	Logger *log.Logger
	Bridge bridge.Options
}

// Host owns the input trackers, the surface and the module handle of one
// running game. It is driven from a single event sequence and takes no locks.
type Host struct {
	ctx     context.Context
	logger  *log.Logger
	keys    *core.Keyboard
	pointer *core.Pointer
	surface *surface.Surface
	bridge  *bridge.Bridge
	imports *Imports
	module  Module
	sched   Scheduler
	state   State
	size    core.Size
	sized   bool // A size was recorded while Loading
	ticks   uint64
	err     error
}

// New creates a host in the Loading state. Text is drawn with fonts.
func New(fonts *surface.FontBank, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	surf := surface.New(core.Size{}, fonts)
	b := bridge.New(surf, opts.Bridge)
	keys := core.NewKeyboard()
	pointer := core.NewPointer()

	return &Host{
		ctx:     context.Background(),
		logger:  logger,
		keys:    keys,
		pointer: pointer,
		surface: surf,
		bridge:  b,
		imports: NewImports(keys, pointer, b),
		state:   StateLoading,
	}
}

// Keyboard returns the tracker frontends feed key events into.
func (h *Host) Keyboard() *core.Keyboard { return h.keys }

// Pointer returns the tracker frontends feed pointer events into.
func (h *Host) Pointer() *core.Pointer { return h.pointer }

// Surface returns the surface the module paints onto.
func (h *Host) Surface() *surface.Surface { return h.surface }

// State returns the lifecycle state.
func (h *Host) State() State { return h.state }

// Size returns the current surface dimensions.
func (h *Host) Size() core.Size { return h.size }

// Ticks returns how many ticks have completed.
func (h *Host) Ticks() uint64 { return h.ticks }

// Err returns the failure that halted the host, or nil.
func (h *Host) Err() error { return h.err }

// Boot instantiates the module, calls its init export once and then its
// resize export once with the initial size. A size recorded by Resize while
// Loading takes precedence over size. On success the host is Ready.
func (h *Host) Boot(ctx context.Context, instantiate InstantiateFunc, size core.Size) error {
	if h.module != nil {
		return errors.New("host: module already loaded")
	}
	h.ctx = ctx
	if h.sized {
		size = h.size
	}
	h.size = size
	h.surface.Resize(size)

	h.logger.Info("loading module", "width", size.W, "height", size.H)
	mod, err := instantiate(ctx, h.imports)
	if err != nil {
		return h.fail(fmt.Errorf("host: %w: %w", core.ErrAssetLoad, err))
	}
	h.module = mod
	// A resize may have landed while the module was instantiating.
	size = h.size

	if err := mod.Init(ctx, size); err != nil {
		return h.fail(exportError(ExportInit, err))
	}
	if err := mod.Resize(ctx, size); err != nil {
		return h.fail(exportError(ExportResize, err))
	}

	h.state = StateReady
	h.logger.Info("module ready")
	return nil
}

// Run starts the tick loop on sched. The loop has no stop condition: it only
// ends when a tick fails or the frontend stops firing the scheduler.
func (h *Host) Run(sched Scheduler) error {
	if h.state != StateReady {
		return fmt.Errorf("host: cannot run in state %s", h.state)
	}
	h.sched = sched
	h.state = StateRunning
	h.logger.Info("tick loop started")
	sched.RequestTick(h.tick)
	return nil
}

// tick runs one frame and requests the next one unless the frame failed.
func (h *Host) tick() {
	if h.err != nil {
		return
	}
	if err := h.Frame(); err != nil {
		return
	}
	h.sched.RequestTick(h.tick)
}

// Frame runs one tick: the render export, then the update export.
func (h *Host) Frame() error {
	if h.err != nil {
		return h.err
	}
	if h.module == nil {
		return errors.New("host: no module loaded")
	}

	h.bridge.BeginRender()
	err := h.module.Render(h.ctx)
	h.bridge.EndRender()
	if err != nil {
		return h.fail(exportError(ExportRender, err))
	}

	if err := h.module.Update(h.ctx); err != nil {
		return h.fail(exportError(ExportUpdate, err))
	}

	h.ticks++
	return nil
}

// Resize applies new surface dimensions and mirrors them into the module
// before the next tick. An unchanged size is a no-op. Before Boot only the
// size is recorded.
func (h *Host) Resize(size core.Size) error {
	if h.err != nil {
		return h.err
	}
	if size == h.size {
		return nil
	}
	h.size = size
	h.surface.Resize(size)

	if h.module == nil {
		h.sized = true
		return nil
	}
	h.logger.Debug("resize", "width", size.W, "height", size.H)
	if err := h.module.Resize(h.ctx, size); err != nil {
		return h.fail(exportError(ExportResize, err))
	}
	return nil
}

// Close releases the module runtime.
func (h *Host) Close(ctx context.Context) error {
	if h.module == nil {
		return nil
	}
	return h.module.Close(ctx)
}

// fail records err as the halting fault.
func (h *Host) fail(err error) error {
	h.err = err
	h.logger.Error("host halted", "state", h.state, "tick", h.ticks, "error", err)
	return err
}

func exportError(name string, err error) error {
	return fmt.Errorf("host: %w: %s: %w", core.ErrModuleExport, name, err)
}
