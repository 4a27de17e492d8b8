package host

import (
	"context"

	"github.com/vovakirdan/wasmcade/internal/core"
)

// Names of the module ABI. Imports live in the "env" namespace.
const (
	EnvModule = "env"

	ImportMouseX       = "platformMouseX"
	ImportMouseY       = "platformMouseY"
	ImportMouseDown    = "platformMouseDown"
	ImportMousePressed = "platformMousePressed"
	ImportClicked      = "platformClicked"
	ImportKeyDown      = "platformKeyDown"
	ImportKeyPressed   = "platformKeyPressed"
	ImportDrawRect     = "platformDrawRect"
	ImportDrawCircle   = "platformDrawCircle"
	ImportDrawText     = "platformDrawText"

	ExportInit   = "gameInit"
	ExportResize = "gameResize"
	ExportRender = "gameRender"
	ExportUpdate = "gameUpdate"
	ExportMemory = "memory"
)

// Module is an instantiated game module. Every call runs synchronously and
// may call back into the imports it was instantiated with.
type Module interface {
	// Init runs once before the first tick. Implementations pass the size
	// only when the module's init export accepts it.
	Init(ctx context.Context, size core.Size) error

	// Resize mirrors new surface dimensions into the module.
	Resize(ctx context.Context, size core.Size) error

	// Render paints the full frame through the draw imports.
	Render(ctx context.Context) error

	// Update advances game state, reading input through the query imports.
	Update(ctx context.Context) error

	// Close releases the module's runtime.
	Close(ctx context.Context) error
}

// InstantiateFunc creates a module bound to the given imports.
type InstantiateFunc func(ctx context.Context, im *Imports) (Module, error)
