//go:build !ebiten

package window

import (
	"context"
	"errors"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/host"
)

const available = false

// ErrUnavailable is returned when the binary was built without Ebitengine.
var ErrUnavailable = errors.New("window: frontend not compiled in (build with -tags ebiten)")

func run(context.Context, *host.Host, core.RuntimeConfig) error {
	return ErrUnavailable
}
