//go:build ebiten

package window

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/host"
)

const available = true

// windowTitle is shown in the title bar.
const windowTitle = "wasmcade"

func run(ctx context.Context, h *host.Host, cfg core.RuntimeConfig) error {
	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := newGame(ctx, h)
	if err := h.Run(g.sched); err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return ctx.Err()
}

// game adapts a host to ebiten.Game. Ebitengine calls Layout, Update and
// Draw from one goroutine, which is the host's event sequence.
type game struct {
	ctx    context.Context
	host   *host.Host
	sched  *host.FrameScheduler
	logger *log.Logger
	held   map[ebiten.Key]string
	keys   []ebiten.Key
}

func newGame(ctx context.Context, h *host.Host) *game {
	return &game{
		ctx:    ctx,
		host:   h,
		sched:  host.NewFrameScheduler(),
		logger: log.Default(),
		held:   make(map[ebiten.Key]string),
	}
}

// Update forwards input and fires the pending host tick.
func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.pollKeys()
	g.pollPointer()

	g.sched.Fire()

	if err := g.host.Err(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// pollKeys reports key transitions. The identifier chosen at press time is
// the one released, so shift changes mid-hold cannot strand a key.
func (g *game) pollKeys() {
	kb := g.host.Keyboard()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		id, ok := KeyIdentifier(k, shift)
		if !ok {
			continue
		}
		g.held[k] = id
		kb.OnKeyDown(id)
	}

	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		id, ok := g.held[k]
		if !ok {
			continue
		}
		delete(g.held, k)
		kb.OnKeyUp(id)
	}
}

func (g *game) pollPointer() {
	p := g.host.Pointer()
	p.OnMove(ebiten.CursorPosition())

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.OnDown()
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.OnUp()
	}
}

// Draw uploads the surface. A frame whose size no longer matches the
// screen is skipped; the next Layout resizes the surface.
func (g *game) Draw(screen *ebiten.Image) {
	img := g.host.Surface().Image()
	if screen.Bounds().Size() != img.Bounds().Size() {
		return
	}
	screen.WritePixels(img.Pix)
}

// Layout keeps the surface at the window's size.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if err := g.host.Resize(core.NewSize(outsideWidth, outsideHeight)); err != nil {
		g.logger.Error("resize failed", "error", err)
	}
	return outsideWidth, outsideHeight
}
