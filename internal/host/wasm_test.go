package host

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/surface"
)

// The helpers below assemble a minimal game module by hand:
//
//	(import "env" "platformDrawText" (func (param i32 i32 i32)))
//	(memory (export "memory") 1)
//	(data (i32.const 0) "Hi\00")
//	(func (export "gameInit") (param i32 i32))
//	(func (export "gameResize") (param i32 i32))
//	(func (export "gameRender") (call 0 (i32.const 200) (i32.const 100) (i32.const ref)))
//	(func (export "gameUpdate"))

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		if done {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func wasmSection(id byte, content []byte) []byte {
	out := append([]byte{id}, uleb(uint32(len(content)))...)
	return append(out, content...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func testModuleBinary(ref int32) []byte {
	const i32 = 0x7f

	types := concat(
		[]byte{3},
		[]byte{0x60, 0, 0},                // 0: () -> ()
		[]byte{0x60, 2, i32, i32, 0},      // 1: (i32 i32) -> ()
		[]byte{0x60, 3, i32, i32, i32, 0}, // 2: (i32 i32 i32) -> ()
	)
	imports := concat(
		[]byte{1},
		wasmName(EnvModule), wasmName(ImportDrawText), []byte{0x00, 2},
	)
	funcs := []byte{4, 1, 1, 0, 0}
	memory := []byte{1, 0x00, 1}
	exports := concat(
		[]byte{5},
		wasmName(ExportInit), []byte{0x00, 1},
		wasmName(ExportResize), []byte{0x00, 2},
		wasmName(ExportRender), []byte{0x00, 3},
		wasmName(ExportUpdate), []byte{0x00, 4},
		wasmName(ExportMemory), []byte{0x02, 0},
	)

	empty := []byte{0x00, 0x0b}
	render := concat(
		[]byte{0x00},
		[]byte{0x41}, sleb(200),
		[]byte{0x41}, sleb(100),
		[]byte{0x41}, sleb(ref),
		[]byte{0x10, 0x00, 0x0b},
	)
	body := func(code []byte) []byte { return append(uleb(uint32(len(code))), code...) }
	code := concat([]byte{4}, body(empty), body(empty), body(render), body(empty))

	text := []byte("Hi\x00")
	data := concat(
		[]byte{1, 0x00, 0x41, 0x00, 0x0b},
		uleb(uint32(len(text))), text,
	)

	return concat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		wasmSection(1, types),
		wasmSection(2, imports),
		wasmSection(3, funcs),
		wasmSection(5, memory),
		wasmSection(7, exports),
		wasmSection(10, code),
		wasmSection(11, data),
	)
}

func newWasmHost(t *testing.T) *Host {
	t.Helper()
	fonts, err := surface.BuiltinFont()
	if err != nil {
		t.Fatalf("BuiltinFont() failed: %v", err)
	}
	return New(fonts, Options{})
}

func hasInk(img *image.RGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			return true
		}
	}
	return false
}

func TestWasmModuleRendersText(t *testing.T) {
	ctx := context.Background()
	h := newWasmHost(t)
	defer h.Close(ctx)

	if err := h.Boot(ctx, Instantiator(testModuleBinary(0), core.TextAuto), core.Size{W: 200, H: 100}); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}
	if err := h.Frame(); err != nil {
		t.Fatalf("Frame() failed: %v", err)
	}
	if !hasInk(h.Surface().Image()) {
		t.Error("centred text should be painted")
	}
}

func TestWasmTextPastEndOfMemory(t *testing.T) {
	ctx := context.Background()
	h := newWasmHost(t)
	defer h.Close(ctx)

	// One page is 65536 bytes, so this offset is one past the end.
	if err := h.Boot(ctx, Instantiator(testModuleBinary(65536), core.TextAuto), core.Size{W: 200, H: 100}); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}

	err := h.Frame()
	if !errors.Is(err, core.ErrModuleExport) {
		t.Errorf("Frame() error = %v, expected ErrModuleExport", err)
	}
	if !errors.Is(err, core.ErrMemoryAccess) {
		t.Errorf("Frame() error = %v, expected ErrMemoryAccess", err)
	}
	if hasInk(h.Surface().Image()) {
		t.Error("nothing should be painted")
	}
}

func TestWasmExplicitTextModeMismatch(t *testing.T) {
	ctx := context.Background()
	h := newWasmHost(t)

	err := h.Boot(ctx, Instantiator(testModuleBinary(0), core.TextPositioned), core.Size{W: 1, H: 1})
	if !errors.Is(err, core.ErrAssetLoad) {
		t.Errorf("Boot() error = %v, expected ErrAssetLoad", err)
	}
}

func TestWasmRejectsGarbage(t *testing.T) {
	h := newWasmHost(t)

	err := h.Boot(context.Background(), Instantiator([]byte("not wasm"), core.TextAuto), core.Size{W: 1, H: 1})
	if !errors.Is(err, core.ErrAssetLoad) {
		t.Errorf("Boot() error = %v, expected ErrAssetLoad", err)
	}
}

// wideResizeBinary is a module whose gameResize takes (i64, i64).
func wideResizeBinary() []byte {
	const i32, i64 = 0x7f, 0x7e

	types := concat(
		[]byte{3},
		[]byte{0x60, 0, 0},           // 0: () -> ()
		[]byte{0x60, 2, i32, i32, 0}, // 1: (i32 i32) -> ()
		[]byte{0x60, 2, i64, i64, 0}, // 2: (i64 i64) -> ()
	)
	funcs := []byte{4, 1, 2, 0, 0}
	exports := concat(
		[]byte{4},
		wasmName(ExportInit), []byte{0x00, 0},
		wasmName(ExportResize), []byte{0x00, 1},
		wasmName(ExportRender), []byte{0x00, 2},
		wasmName(ExportUpdate), []byte{0x00, 3},
	)
	empty := []byte{0x02, 0x00, 0x0b}
	code := concat([]byte{4}, empty, empty, empty, empty)

	return concat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		wasmSection(1, types),
		wasmSection(3, funcs),
		wasmSection(7, exports),
		wasmSection(10, code),
	)
}

func TestWasmRejectsNonI32Export(t *testing.T) {
	fonts, err := surface.BuiltinFont()
	if err != nil {
		t.Fatalf("BuiltinFont() failed: %v", err)
	}
	h := New(fonts, Options{})

	err = h.Boot(context.Background(), Instantiator(wideResizeBinary(), core.TextAuto), core.Size{W: 1, H: 1})
	if !errors.Is(err, core.ErrAssetLoad) {
		t.Errorf("Boot() error = %v, expected ErrAssetLoad", err)
	}
	if h.State() != StateLoading {
		t.Errorf("State() = %s, expected loading", h.State())
	}
}

func TestDescribe(t *testing.T) {
	report, err := Describe(context.Background(), testModuleBinary(0))
	if err != nil {
		t.Fatalf("Describe() failed: %v", err)
	}

	if report.TextMode != core.TextCentered {
		t.Errorf("TextMode = %s, expected centered", report.TextMode)
	}
	if !report.InitTakesSize {
		t.Error("gameInit takes (w, h)")
	}
	if !report.HasMemory {
		t.Error("module exports memory")
	}
	if len(report.Missing) != 0 {
		t.Errorf("Missing = %v, expected none", report.Missing)
	}
	if len(report.Imports) != 1 || report.Imports[0].String() != "env.platformDrawText(i32, i32, i32)" {
		t.Errorf("Imports = %v", report.Imports)
	}
	if len(report.Exports) != 4 || report.Exports[0].Name != ExportInit {
		t.Errorf("Exports = %v, expected four sorted lifecycle exports", report.Exports)
	}
}

// fakeDef is a function definition with only an import name and arity.
type fakeDef struct {
	api.FunctionDefinition
	module, name string
	params       int
}

func (d fakeDef) Import() (string, string, bool) { return d.module, d.name, true }

func (d fakeDef) ParamTypes() []api.ValueType {
	return make([]api.ValueType, d.params)
}

func TestResolveTextMode(t *testing.T) {
	positioned := []api.FunctionDefinition{fakeDef{module: EnvModule, name: ImportDrawText, params: 5}}
	centered := []api.FunctionDefinition{fakeDef{module: EnvModule, name: ImportDrawText, params: 3}}
	odd := []api.FunctionDefinition{fakeDef{module: EnvModule, name: ImportDrawText, params: 4}}
	other := []api.FunctionDefinition{fakeDef{module: "other", name: ImportDrawText, params: 3}}

	tests := []struct {
		name     string
		mode     core.TextMode
		imported []api.FunctionDefinition
		want     core.TextMode
		wantErr  bool
	}{
		{"auto positioned", core.TextAuto, positioned, core.TextPositioned, false},
		{"auto centered", core.TextAuto, centered, core.TextCentered, false},
		{"auto without import", core.TextAuto, nil, core.TextPositioned, false},
		{"other namespace ignored", core.TextAuto, other, core.TextPositioned, false},
		{"explicit match", core.TextCentered, centered, core.TextCentered, false},
		{"explicit without import", core.TextCentered, nil, core.TextCentered, false},
		{"explicit mismatch", core.TextPositioned, centered, "", true},
		{"unknown arity", core.TextAuto, odd, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveTextMode(tc.mode, tc.imported)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ResolveTextMode() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ResolveTextMode() = %s, expected %s", got, tc.want)
			}
		})
	}
}
