package host

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/vovakirdan/wasmcade/internal/core"
	"github.com/vovakirdan/wasmcade/internal/surface"
)

// fakeModule records lifecycle calls and runs optional hooks against the
// imports it was instantiated with.
type fakeModule struct {
	im       *Imports
	calls    []string
	onRender func(im *Imports) error
	onUpdate func(im *Imports) error
	onResize func(size core.Size) error
	closed   bool
}

func (m *fakeModule) Init(_ context.Context, size core.Size) error {
	m.calls = append(m.calls, fmt.Sprintf("init(%d,%d)", size.W, size.H))
	return nil
}

func (m *fakeModule) Resize(_ context.Context, size core.Size) error {
	m.calls = append(m.calls, fmt.Sprintf("resize(%d,%d)", size.W, size.H))
	if m.onResize != nil {
		return m.onResize(size)
	}
	return nil
}

func (m *fakeModule) Render(context.Context) error {
	m.calls = append(m.calls, "render")
	if m.onRender != nil {
		return m.onRender(m.im)
	}
	return nil
}

func (m *fakeModule) Update(context.Context) error {
	m.calls = append(m.calls, "update")
	if m.onUpdate != nil {
		return m.onUpdate(m.im)
	}
	return nil
}

func (m *fakeModule) Close(context.Context) error {
	m.closed = true
	return nil
}

func (m *fakeModule) instantiate(_ context.Context, im *Imports) (Module, error) {
	m.im = im
	return m, nil
}

func bootHost(t *testing.T, m *fakeModule, size core.Size) *Host {
	t.Helper()
	fonts, err := surface.BuiltinFont()
	if err != nil {
		t.Fatalf("BuiltinFont() failed: %v", err)
	}
	h := New(fonts, Options{})
	if err := h.Boot(context.Background(), m.instantiate, size); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}
	return h
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestBootCallsInitThenOneResize(t *testing.T) {
	m := &fakeModule{}
	h := bootHost(t, m, core.Size{W: 800, H: 600})

	want := []string{"init(800,600)", "resize(800,600)"}
	if !equalCalls(m.calls, want) {
		t.Fatalf("calls = %v, expected %v", m.calls, want)
	}
	if h.State() != StateReady {
		t.Errorf("State() = %s, expected ready", h.State())
	}
	if got := h.Surface().Size(); got != (core.Size{W: 800, H: 600}) {
		t.Errorf("surface size = %v, expected 800x600", got)
	}

	// The frontend's first size report matches the boot size: no extra resize.
	if err := h.Resize(core.Size{W: 800, H: 600}); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}

	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	sched.Fire()

	want = append(want, "render", "update")
	if !equalCalls(m.calls, want) {
		t.Errorf("calls = %v, expected exactly one resize before the first render: %v", m.calls, want)
	}
}

func TestBootFailureIsAssetLoad(t *testing.T) {
	h := New(nil, Options{})
	failing := func(context.Context, *Imports) (Module, error) {
		return nil, errors.New("bad magic")
	}

	err := h.Boot(context.Background(), failing, core.Size{W: 1, H: 1})
	if !errors.Is(err, core.ErrAssetLoad) {
		t.Fatalf("Boot() error = %v, expected ErrAssetLoad", err)
	}
	if h.State() != StateLoading {
		t.Errorf("State() = %s, expected loading", h.State())
	}
	if !errors.Is(h.Err(), core.ErrAssetLoad) {
		t.Errorf("Err() = %v, expected ErrAssetLoad", h.Err())
	}
}

func TestRunRequiresReady(t *testing.T) {
	h := New(nil, Options{})
	if err := h.Run(NewFrameScheduler()); err == nil {
		t.Error("Run() before Boot should fail")
	}
}

func TestTickLoopRendersThenUpdates(t *testing.T) {
	m := &fakeModule{}
	h := bootHost(t, m, core.Size{W: 10, H: 10})
	m.calls = nil

	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if h.State() != StateRunning {
		t.Errorf("State() = %s, expected running", h.State())
	}

	for i := 0; i < 3; i++ {
		if !sched.Fire() {
			t.Fatalf("tick %d: nothing pending", i)
		}
	}

	want := []string{"render", "update", "render", "update", "render", "update"}
	if !equalCalls(m.calls, want) {
		t.Errorf("calls = %v, expected %v", m.calls, want)
	}
	if h.Ticks() != 3 {
		t.Errorf("Ticks() = %d, expected 3", h.Ticks())
	}
	if !sched.Pending() {
		t.Error("the loop should always request the next tick")
	}
}

func TestFailedTickHaltsLoop(t *testing.T) {
	boom := errors.New("unreachable executed")
	m := &fakeModule{
		onUpdate: func(*Imports) error { return boom },
	}
	h := bootHost(t, m, core.Size{W: 10, H: 10})

	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	sched.Fire()

	if sched.Pending() {
		t.Error("a failed tick must not request another")
	}
	if !errors.Is(h.Err(), core.ErrModuleExport) || !errors.Is(h.Err(), boom) {
		t.Errorf("Err() = %v, expected ErrModuleExport wrapping the cause", h.Err())
	}
	if err := h.Frame(); !errors.Is(err, core.ErrModuleExport) {
		t.Errorf("Frame() after a fault = %v, expected the recorded fault", err)
	}
}

func TestResizeWhileRunning(t *testing.T) {
	m := &fakeModule{}
	h := bootHost(t, m, core.Size{W: 10, H: 10})
	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	m.calls = nil

	if err := h.Resize(core.Size{W: 20, H: 5}); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	sched.Fire()

	want := []string{"resize(20,5)", "render", "update"}
	if !equalCalls(m.calls, want) {
		t.Errorf("calls = %v, expected %v", m.calls, want)
	}
	if h.Size() != (core.Size{W: 20, H: 5}) || h.Surface().Size() != h.Size() {
		t.Errorf("sizes = %v / %v, expected 20x5", h.Size(), h.Surface().Size())
	}
}

func TestResizeFailureHalts(t *testing.T) {
	m := &fakeModule{}
	h := bootHost(t, m, core.Size{W: 10, H: 10})
	m.onResize = func(core.Size) error { return errors.New("trap") }

	if err := h.Resize(core.Size{W: 1, H: 1}); !errors.Is(err, core.ErrModuleExport) {
		t.Fatalf("Resize() error = %v, expected ErrModuleExport", err)
	}
	if h.Err() == nil {
		t.Error("resize failure should halt the host")
	}
}

func TestHeldKeyScenario(t *testing.T) {
	var downs, presses []bool
	m := &fakeModule{
		onUpdate: func(im *Imports) error {
			downs = append(downs, im.KeyDown('a'))
			presses = append(presses, im.KeyPressed('a'))
			return nil
		},
	}
	h := bootHost(t, m, core.Size{W: 10, H: 10})
	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	h.Keyboard().OnKeyDown("a")
	for i := 0; i < 3; i++ {
		sched.Fire()
	}
	h.Keyboard().OnKeyUp("a")
	sched.Fire()
	sched.Fire()

	wantDowns := []bool{true, true, true, false, false}
	wantPresses := []bool{false, false, false, true, false}
	for i := range wantDowns {
		if downs[i] != wantDowns[i] {
			t.Errorf("tick %d: keyDown = %v, expected %v", i, downs[i], wantDowns[i])
		}
		if presses[i] != wantPresses[i] {
			t.Errorf("tick %d: keyPressed = %v, expected %v", i, presses[i], wantPresses[i])
		}
	}
}

func TestPointerImports(t *testing.T) {
	type sample struct {
		x, y              int32
		down, clicked     bool
		pressed, pressed2 bool
	}
	var got []sample
	m := &fakeModule{
		onUpdate: func(im *Imports) error {
			got = append(got, sample{
				x: im.MouseX(), y: im.MouseY(),
				down: im.MouseDown(), clicked: im.Clicked(),
				pressed: im.MousePressed(), pressed2: im.MousePressed(),
			})
			return nil
		},
	}
	h := bootHost(t, m, core.Size{W: 10, H: 10})
	sched := NewFrameScheduler()
	if err := h.Run(sched); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	h.Pointer().OnMove(3, 4)
	h.Pointer().OnDown()
	sched.Fire()
	h.Pointer().OnUp()
	sched.Fire()

	if got[0] != (sample{x: 3, y: 4, down: true, clicked: true}) {
		t.Errorf("tick 0 = %+v", got[0])
	}
	if got[1] != (sample{x: 3, y: 4, pressed: true}) {
		t.Errorf("tick 1 = %+v, expected one pressed edge", got[1])
	}
}

func TestDrawOutsideRenderFailsTick(t *testing.T) {
	m := &fakeModule{
		onUpdate: func(im *Imports) error {
			return im.DrawRect(0, 0, 1, 1, 0xffffffff)
		},
	}
	h := bootHost(t, m, core.Size{W: 10, H: 10})

	err := h.Frame()
	if !errors.Is(err, core.ErrOutsideRender) {
		t.Errorf("Frame() error = %v, expected ErrOutsideRender", err)
	}
}

func TestRenderPaintsSurface(t *testing.T) {
	m := &fakeModule{
		onRender: func(im *Imports) error {
			return im.DrawRect(0, 0, 5, 5, 0x00ff00ff)
		},
	}
	h := bootHost(t, m, core.Size{W: 10, H: 10})

	if err := h.Frame(); err != nil {
		t.Fatalf("Frame() failed: %v", err)
	}
	if c := h.Surface().Image().RGBAAt(2, 2); c.G != 0xff {
		t.Errorf("pixel = %v, expected green", c)
	}
}

func TestIndependentHosts(t *testing.T) {
	a := bootHost(t, &fakeModule{}, core.Size{W: 1, H: 1})
	b := bootHost(t, &fakeModule{}, core.Size{W: 1, H: 1})

	a.Keyboard().OnKeyDown("x")
	if b.Keyboard().IsDown("x") {
		t.Error("hosts must not share input state")
	}
}

func TestClose(t *testing.T) {
	m := &fakeModule{}
	h := bootHost(t, m, core.Size{W: 1, H: 1})

	if err := h.Close(context.Background()); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if !m.closed {
		t.Error("Close() should close the module")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateLoading: "loading",
		StateReady:   "ready",
		StateRunning: "running",
		State(42):    "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, expected %q", int(s), s.String(), want)
		}
	}
}

func TestResizeWhileLoadingAppliesAtBoot(t *testing.T) {
	fonts, err := surface.BuiltinFont()
	if err != nil {
		t.Fatalf("BuiltinFont() failed: %v", err)
	}
	m := &fakeModule{}
	h := New(fonts, Options{})

	if err := h.Resize(core.Size{W: 300, H: 200}); err != nil {
		t.Fatalf("Resize() while loading failed: %v", err)
	}
	if len(m.calls) != 0 {
		t.Fatalf("calls = %v, expected none before Boot", m.calls)
	}

	if err := h.Boot(context.Background(), m.instantiate, core.Size{W: 800, H: 600}); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}

	want := []string{"init(300,200)", "resize(300,200)"}
	if !equalCalls(m.calls, want) {
		t.Errorf("calls = %v, expected %v", m.calls, want)
	}
	if h.Size() != (core.Size{W: 300, H: 200}) || h.Surface().Size() != h.Size() {
		t.Errorf("sizes = %v / %v, expected 300x200", h.Size(), h.Surface().Size())
	}
}

func TestResizeDuringInstantiate(t *testing.T) {
	fonts, err := surface.BuiltinFont()
	if err != nil {
		t.Fatalf("BuiltinFont() failed: %v", err)
	}
	m := &fakeModule{}
	h := New(fonts, Options{})

	instantiate := func(ctx context.Context, im *Imports) (Module, error) {
		if err := h.Resize(core.Size{W: 640, H: 480}); err != nil {
			return nil, err
		}
		return m.instantiate(ctx, im)
	}
	if err := h.Boot(context.Background(), instantiate, core.Size{W: 800, H: 600}); err != nil {
		t.Fatalf("Boot() failed: %v", err)
	}

	want := []string{"init(640,480)", "resize(640,480)"}
	if !equalCalls(m.calls, want) {
		t.Errorf("calls = %v, expected %v", m.calls, want)
	}
}
