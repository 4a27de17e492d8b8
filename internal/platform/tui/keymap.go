package tui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the keys the frontend keeps for itself.
// Every other key is forwarded to the module.
type KeyMap struct {
	Quit       key.Binding
	Screenshot key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Screenshot}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.Screenshot}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// namedKeys maps non-rune keys to the identifiers a browser would report
// through String.fromCharCode(keyCode).
var namedKeys = map[tea.KeyType]string{
	tea.KeySpace:     " ",
	tea.KeyEnter:     "\r",
	tea.KeyTab:       "\t",
	tea.KeyBackspace: "\b",
	tea.KeyEsc:       "\x1b",
	tea.KeyUp:        "ArrowUp",
	tea.KeyDown:      "ArrowDown",
	tea.KeyLeft:      "ArrowLeft",
	tea.KeyRight:     "ArrowRight",
}

// KeyIdentifier returns the tracker identifier for a key message.
// Printable keys are the character itself. Pastes and unmapped control
// keys report false.
func KeyIdentifier(msg tea.KeyMsg) (string, bool) {
	if msg.Type == tea.KeyRunes {
		if len(msg.Runes) != 1 || msg.Paste {
			return "", false
		}
		return string(msg.Runes[0]), true
	}
	id, ok := namedKeys[msg.Type]
	return id, ok
}

// heldKeys tracks when each held key last reported a press or repeat.
// Terminals never report key-up, so a key counts as released once it has
// been silent for longer than the hold window.
type heldKeys struct {
	hold     time.Duration
	lastSeen map[string]time.Time
}

func newHeldKeys(hold time.Duration) *heldKeys {
	return &heldKeys{hold: hold, lastSeen: make(map[string]time.Time)}
}

// touch records a press or auto-repeat of id.
func (k *heldKeys) touch(id string, now time.Time) {
	k.lastSeen[id] = now
}

// expire forgets and returns the keys silent for longer than the hold
// window, in sorted order.
func (k *heldKeys) expire(now time.Time) []string {
	var released []string
	for id, seen := range k.lastSeen {
		if now.Sub(seen) > k.hold {
			released = append(released, id)
		}
	}
	for _, id := range released {
		delete(k.lastSeen, id)
	}
	sort.Strings(released)
	return released
}

// count returns the number of keys currently considered held.
func (k *heldKeys) count() int {
	return len(k.lastSeen)
}
