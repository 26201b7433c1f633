package viewer

import (
	"fmt"
	"image"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"raytracer/internal/logger"
	"raytracer/pkg/config"
	"raytracer/pkg/engine"
	"raytracer/pkg/preview"
)

const windowTitle = "raytracer"

// surface is the part of Display the render loop drives.
type surface interface {
	ShouldClose() bool
	Resized() (int, int, bool)
	Present(img *image.RGBA, moving bool)
	SwapBuffers()
	PollEvents()
	SetTitle(title string)
	Close()
}

// keyboard is the part of InputHandler the render loop reads.
type keyboard interface {
	engine.InputSource
	IsKeyDown(key glfw.Key) bool
}

// Viewer runs the interactive loop: one controller poll, one sampling pass
// and one present per displayed frame.
type Viewer struct {
	display surface
	input   keyboard
	session *engine.Session
	sampler *preview.Sampler
	logger  *logger.Logger

	isRunning bool
	started   time.Time
	frameRate int
}

// NewViewer opens the preview window. It must be called from the main
// thread, which must stay locked for the viewer's lifetime.
func NewViewer(cfg *config.Config, log *logger.Logger) (*Viewer, error) {
	display, err := NewDisplay(cfg.Render.Width, cfg.Render.Height, windowTitle)
	if err != nil {
		return nil, err
	}

	return &Viewer{
		display:   display,
		input:     NewInputHandler(display.Window()),
		session:   engine.NewSession(cfg, log),
		sampler:   preview.NewSampler(cfg.Render),
		logger:    log,
		frameRate: cfg.Render.FrameRate,
	}, nil
}

// Session exposes the controller session driven by the viewer.
func (v *Viewer) Session() *engine.Session {
	return v.session
}

// Run blocks until the window is closed or escape is pressed.
func (v *Viewer) Run() {
	v.isRunning = true
	v.started = time.Now()
	v.logger.Infof("Preview started at %dx%d", v.session.Buffer.Width(), v.session.Buffer.Height())

	for v.isRunning && !v.display.ShouldClose() {
		frameStart := time.Now()
		v.isRunning = v.tick()
		v.capFrameRate(frameStart)
	}

	v.cleanup()
}

// tick runs one loop iteration and reports whether the loop should go on.
// A skipped poll draws nothing, so the back buffer is only swapped after a
// Present. Window events are processed either way so a minimised window can
// come back.
func (v *Viewer) tick() bool {
	if v.input.IsKeyDown(glfw.KeyEscape) {
		return false
	}

	if width, height, ok := v.display.Resized(); ok {
		v.session.Buffer.Resize(width, height)
		v.logger.Debugf("Accumulation buffer resized to %dx%d", width, height)
	}

	res := v.session.Poll(v.input)
	if !res.Skipped {
		v.sampler.Sample(v.session.State, v.session.Buffer)
		v.display.Present(preview.Resolve(v.session.Buffer), res.Moving)
		v.display.SwapBuffers()

		if v.session.Frames()%30 == 0 {
			v.display.SetTitle(v.title())
		}
	}

	v.display.PollEvents()
	return true
}

func (v *Viewer) title() string {
	mode := "colour"
	if v.session.DistancePass() {
		mode = "distance"
	}
	return fmt.Sprintf("%s - %s - %d spp", windowTitle, mode, v.session.Buffer.Samples)
}

func (v *Viewer) capFrameRate(frameStart time.Time) {
	if v.frameRate <= 0 {
		return
	}
	frameTime := time.Since(frameStart)
	targetFrameTime := time.Second / time.Duration(v.frameRate)
	if frameTime < targetFrameTime {
		time.Sleep(targetFrameTime - frameTime)
	}
}

func (v *Viewer) cleanup() {
	v.logger.Infof("Shutting down preview after %d frames (%s)", v.session.Frames(), time.Since(v.started).Round(time.Millisecond))
	v.display.Close()
}
