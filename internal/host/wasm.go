package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/vovakirdan/wasmcade/internal/bridge"
	"github.com/vovakirdan/wasmcade/internal/core"
)

// wasmModule is a Module backed by a wazero instance.
type wasmModule struct {
	runtime wazero.Runtime
	mod     api.Module
	init    api.Function
	resize  api.Function
	render  api.Function
	update  api.Function
}

// Instantiator returns an InstantiateFunc that compiles binary with wazero
// and binds drawText according to mode.
func Instantiator(binary []byte, mode core.TextMode) InstantiateFunc {
	return func(ctx context.Context, im *Imports) (Module, error) {
		return instantiate(ctx, binary, mode, im)
	}
}

func instantiate(ctx context.Context, binary []byte, mode core.TextMode, im *Imports) (Module, error) {
	rt := wazero.NewRuntime(ctx)

	m, err := load(ctx, rt, binary, mode, im)
	if err != nil {
		rt.Close(ctx)
		return nil, err
	}
	return m, nil
}

func load(ctx context.Context, rt wazero.Runtime, binary []byte, mode core.TextMode, im *Imports) (*wasmModule, error) {
	compiled, err := rt.CompileModule(ctx, binary)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}

	mode, err = ResolveTextMode(mode, compiled.ImportedFunctions())
	if err != nil {
		return nil, err
	}

	// Modules linked against wasi-libc import a few WASI functions even
	// when they never touch the filesystem.
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return nil, fmt.Errorf("instantiate wasi: %w", err)
	}
	if _, err := bindImports(rt.NewHostModuleBuilder(EnvModule), im, mode).Instantiate(ctx); err != nil {
		return nil, fmt.Errorf("instantiate %s imports: %w", EnvModule, err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("game"))
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}

	m := &wasmModule{runtime: rt, mod: mod}
	exports := []struct {
		name   string
		dst    *api.Function
		params []int
	}{
		{ExportInit, &m.init, []int{0, 2}},
		{ExportResize, &m.resize, []int{2}},
		{ExportRender, &m.render, []int{0}},
		{ExportUpdate, &m.update, []int{0}},
	}
	for _, e := range exports {
		fn := mod.ExportedFunction(e.name)
		if fn == nil {
			return nil, fmt.Errorf("module does not export %s", e.name)
		}
		if !i32Params(fn.Definition(), e.params) {
			return nil, fmt.Errorf("export %s has signature %s, want %v i32 params",
				e.name, signature("", e.name, fn.Definition()), e.params)
		}
		*e.dst = fn
	}
	return m, nil
}

// i32Params reports whether def takes only i32 params, in one of the
// allowed counts.
func i32Params(def api.FunctionDefinition, allowed []int) bool {
	params := def.ParamTypes()
	for _, t := range params {
		if t != api.ValueTypeI32 {
			return false
		}
	}
	n := len(params)
	for _, a := range allowed {
		if n == a {
			return true
		}
	}
	return false
}

// ResolveTextMode settles TextAuto from the declared signature of the
// module's drawText import: five params is the positioned variant, three the
// centred one. A module that does not import drawText gets the positioned
// binding. An explicit mode must agree with the declared signature.
func ResolveTextMode(mode core.TextMode, imported []api.FunctionDefinition) (core.TextMode, error) {
	declared := core.TextMode("")
	for _, def := range imported {
		module, name, ok := def.Import()
		if !ok || module != EnvModule || name != ImportDrawText {
			continue
		}
		switch len(def.ParamTypes()) {
		case 5:
			declared = core.TextPositioned
		case 3:
			declared = core.TextCentered
		default:
			return "", fmt.Errorf("%s.%s takes %d params, want 5 (positioned) or 3 (centered)",
				EnvModule, ImportDrawText, len(def.ParamTypes()))
		}
	}

	switch {
	case mode == core.TextAuto && declared == "":
		return core.TextPositioned, nil
	case mode == core.TextAuto:
		return declared, nil
	case declared != "" && declared != mode:
		return "", fmt.Errorf("text mode %s does not match module's %s.%s (%s)",
			mode, EnvModule, ImportDrawText, declared)
	default:
		return mode, nil
	}
}

// bindImports exports every import on the env host module.
// Host functions report failures by panicking with the error; wazero turns
// the panic into an error returned from the export call that is running.
func bindImports(b wazero.HostModuleBuilder, im *Imports, mode core.TextMode) wazero.HostModuleBuilder {
	b = b.NewFunctionBuilder().WithFunc(im.MouseX).Export(ImportMouseX)
	b = b.NewFunctionBuilder().WithFunc(im.MouseY).Export(ImportMouseY)
	b = b.NewFunctionBuilder().WithFunc(func() int32 { return boolToI32(im.MouseDown()) }).Export(ImportMouseDown)
	b = b.NewFunctionBuilder().WithFunc(func() int32 { return boolToI32(im.MousePressed()) }).Export(ImportMousePressed)
	b = b.NewFunctionBuilder().WithFunc(func() int32 { return boolToI32(im.Clicked()) }).Export(ImportClicked)
	b = b.NewFunctionBuilder().WithFunc(func(code uint32) int32 { return boolToI32(im.KeyDown(code)) }).Export(ImportKeyDown)
	b = b.NewFunctionBuilder().WithFunc(func(code uint32) int32 { return boolToI32(im.KeyPressed(code)) }).Export(ImportKeyPressed)

	b = b.NewFunctionBuilder().WithFunc(func(x, y, w, h int32, color uint32) {
		must(im.DrawRect(x, y, w, h, color))
	}).Export(ImportDrawRect)
	b = b.NewFunctionBuilder().WithFunc(func(x, y, r int32, color uint32) {
		must(im.DrawCircle(x, y, r, color))
	}).Export(ImportDrawCircle)

	if mode == core.TextCentered {
		return b.NewFunctionBuilder().WithFunc(func(_ context.Context, m api.Module, w, h int32, ref uint32) {
			must(im.DrawTextCentered(memoryOf(m), w, h, ref))
		}).Export(ImportDrawText)
	}
	return b.NewFunctionBuilder().WithFunc(func(_ context.Context, m api.Module, x, y, size int32, ref, color uint32) {
		must(im.DrawTextAt(memoryOf(m), x, y, size, ref, color))
	}).Export(ImportDrawText)
}

// memoryOf returns the calling module's memory, or nil when it has none.
func memoryOf(m api.Module) bridge.Memory {
	mem := m.Memory()
	if mem == nil {
		return nil
	}
	return mem
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *wasmModule) Init(ctx context.Context, size core.Size) error {
	if len(m.init.Definition().ParamTypes()) == 2 {
		_, err := m.init.Call(ctx, api.EncodeI32(int32(size.W)), api.EncodeI32(int32(size.H)))
		return err
	}
	_, err := m.init.Call(ctx)
	return err
}

func (m *wasmModule) Resize(ctx context.Context, size core.Size) error {
	_, err := m.resize.Call(ctx, api.EncodeI32(int32(size.W)), api.EncodeI32(int32(size.H)))
	return err
}

func (m *wasmModule) Render(ctx context.Context) error {
	_, err := m.render.Call(ctx)
	return err
}

func (m *wasmModule) Update(ctx context.Context) error {
	_, err := m.update.Call(ctx)
	return err
}

func (m *wasmModule) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}
