package viewer

import (
	"image"
	"io"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	"raytracer/internal/logger"
	"raytracer/pkg/config"
	"raytracer/pkg/engine"
	"raytracer/pkg/preview"
)

type fakeSurface struct {
	presents, swaps, polls int
	resize                 []int
}

func (f *fakeSurface) ShouldClose() bool { return false }

func (f *fakeSurface) Resized() (int, int, bool) {
	if f.resize == nil {
		return 0, 0, false
	}
	w, h := f.resize[0], f.resize[1]
	f.resize = nil
	return w, h, true
}

func (f *fakeSurface) Present(*image.RGBA, bool) { f.presents++ }
func (f *fakeSurface) SwapBuffers() { f.swaps++ }
func (f *fakeSurface) PollEvents() { f.polls++ }
func (f *fakeSurface) SetTitle(string) {}
func (f *fakeSurface) Close() {}

type fakeKeyboard struct {
	ok     []bool
	pos    int
	escape bool
}

func (f *fakeKeyboard) Snapshot() (engine.FrameInput, bool) {
	ok := f.ok[f.pos]
	f.pos++
	return engine.FrameInput{Keys: engine.Keys(engine.MoveForward)}, ok
}

func (f *fakeKeyboard) IsKeyDown(key glfw.Key) bool {
	return key == glfw.KeyEscape && f.escape
}

func testViewer(display surface, input keyboard) *Viewer {
	cfg := config.DefaultConfig()
	cfg.Render.Width, cfg.Render.Height = 4, 3

	log := logger.NewLogger("error")
	log.SetOutput(io.Discard)

	return &Viewer{
		display: display,
		input:   input,
		session: engine.NewSession(cfg, log),
		sampler: preview.NewSampler(cfg.Render),
		logger:  log,
	}
}

func TestTickSwapsOnlyAfterPresent(t *testing.T) {
	display := &fakeSurface{}
	v := testViewer(display, &fakeKeyboard{ok: []bool{true, false, false, true}})

	type spec struct {
		presents, swaps, polls int
	}
	specs := []spec{
		{1, 1, 1},
		{1, 1, 2},
		{1, 1, 3},
		{2, 2, 4},
	}

	for index, s := range specs {
		if !v.tick() {
			t.Fatalf("[spec %d] tick stopped the loop", index)
		}
		got := spec{display.presents, display.swaps, display.polls}
		if got != s {
			t.Fatalf("[spec %d] expected %+v; got %+v", index, s, got)
		}
	}
	if v.session.Frames() != 2 {
		t.Errorf("expected 2 applied frames; got %d", v.session.Frames())
	}
}

func TestTickEscapeStops(t *testing.T) {
	display := &fakeSurface{}
	v := testViewer(display, &fakeKeyboard{ok: []bool{true}, escape: true})

	if v.tick() {
		t.Fatal("escape must stop the loop")
	}
	if display.presents != 0 || display.swaps != 0 {
		t.Errorf("nothing may be drawn after escape; got %+v", display)
	}
}

func TestTickResizesBuffer(t *testing.T) {
	display := &fakeSurface{resize: []int{8, 6}}
	v := testViewer(display, &fakeKeyboard{ok: []bool{false}})

	v.tick()
	if v.session.Buffer.Width() != 8 || v.session.Buffer.Height() != 6 {
		t.Fatalf("expected an 8x6 buffer; got %dx%d", v.session.Buffer.Width(), v.session.Buffer.Height())
	}
	if display.swaps != 0 {
		t.Errorf("a skipped poll must not swap; got %d swaps", display.swaps)
	}
}
