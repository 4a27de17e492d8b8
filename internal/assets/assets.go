// Package assets fetches the game module binary and the font resource from
// their fixed locations under the asset directory.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/surface"
)

// BuiltinFont names the embedded Go Regular face instead of a font file.
const BuiltinFont = "builtin"

// Paths are the asset locations relative to the asset filesystem root.
type Paths struct {
	Module string
	Font   string
}

// Bundle is the result of a successful load.
type Bundle struct {
	Module []byte
	Fonts  *surface.FontBank
}

// Load reads the module and registers the font concurrently. Any failure is
// an ErrAssetLoad; the first one cancels the other fetch.
func Load(ctx context.Context, fsys fs.FS, paths Paths) (*Bundle, error) {
	var bundle Bundle
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := readFile(ctx, fsys, paths.Module)
		if err != nil {
			return fmt.Errorf("assets: %w: module: %w", core.ErrAssetLoad, err)
		}
		bundle.Module = data
		return nil
	})

	g.Go(func() error {
		fonts, err := loadFont(ctx, fsys, paths.Font)
		if err != nil {
			return fmt.Errorf("assets: %w: font: %w", core.ErrAssetLoad, err)
		}
		bundle.Fonts = fonts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// LoadModule reads only the module binary.
func LoadModule(ctx context.Context, fsys fs.FS, path string) ([]byte, error) {
	data, err := readFile(ctx, fsys, path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w: module: %w", core.ErrAssetLoad, err)
	}
	return data, nil
}

func loadFont(ctx context.Context, fsys fs.FS, path string) (*surface.FontBank, error) {
	if path == BuiltinFont {
		return surface.BuiltinFont()
	}
	data, err := readFile(ctx, fsys, path)
	if err != nil {
		return nil, err
	}
	return surface.ParseFont(data)
}

func readFile(ctx context.Context, fsys fs.FS, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New("no path configured")
	}
	return fs.ReadFile(fsys, path)
}
