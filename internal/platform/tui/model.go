package tui

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/host"
)

// Model is the Bubble Tea model driving one booted host.
type Model struct {
	host     *host.Host
	sched    *host.FrameScheduler
	config   core.RuntimeConfig
	keys     KeyMap
	held     *heldKeys
	now      func() time.Time
	logger   *log.Logger
	shotDir  string
	cols     int
	rows     int
	err      error
	quitting bool
}

// NewModel creates a model presenting h in a cols × rows terminal.
// The host must be booted; the model starts its tick loop in Start.
func NewModel(h *host.Host, cfg core.RuntimeConfig, cols, rows int) Model {
	return Model{
		host:    h,
		sched:   host.NewFrameScheduler(),
		config:  cfg,
		keys:    DefaultKeyMap(),
		held:    newHeldKeys(cfg.KeyHold),
		now:     time.Now,
		logger:  log.Default(),
		shotDir: filepath.Join(os.Getenv("HOME"), ".wasmcade", "screenshots"),
		cols:    cols,
		rows:    rows,
	}
}

// Start moves the host into its tick loop on the model's scheduler.
func (m Model) Start() error {
	return m.host.Run(m.sched)
}

// Err returns the fault that ended the program, or nil.
func (m Model) Err() error {
	return m.err
}

// Init starts the refresh source.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	id, ok := KeyIdentifier(msg)
	if !ok {
		return m, nil
	}
	// Repeats arrive as further presses, like browser keydown repeats.
	m.held.touch(id, m.now())
	m.host.Keyboard().OnKeyDown(id)
	return m, nil
}

// handleMouse maps a cell position to the centre of its surface pixel block.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	scale := m.config.CellScale
	x := msg.X*scale + scale/2
	y := msg.Y*2*scale + scale

	p := m.host.Pointer()
	p.OnMove(x, y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.OnDown()
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without the button.
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			p.OnUp()
		}
	}
	return m, nil
}

// handleResize processes terminal resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cols = msg.Width
	m.rows = msg.Height

	if err := m.host.Resize(SurfaceSize(msg.Width, msg.Height, m.config.CellScale)); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick releases keys that stopped repeating, then fires the pending
// host tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, id := range m.held.expire(m.now()) {
		m.host.Keyboard().OnKeyUp(id)
	}

	m.sched.Fire()

	if err := m.host.Err(); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current surface as a PNG file.
func (m Model) saveScreenshot() (string, error) {
	img := m.host.Surface().Image()
	if img.Bounds().Empty() {
		return "", errors.New("surface is empty")
	}

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", err
	}

	// Generate filename with timestamp
	timestamp := m.now().Format("20060102_150405.000")
	path := filepath.Join(m.shotDir, fmt.Sprintf("wasmcade_%s.png", timestamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

// View renders the current surface to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderSurface(m.host.Surface().Image(), m.cols, m.rows)
}
