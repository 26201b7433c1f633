package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"raytracer/pkg/engine"
)

// DefaultBindings maps physical keys to input symbols.
var DefaultBindings = map[glfw.Key]engine.Symbol{
	glfw.KeyW:         engine.MoveForward,
	glfw.KeyS:         engine.MoveBack,
	glfw.KeyA:         engine.StrafeLeft,
	glfw.KeyD:         engine.StrafeRight,
	glfw.KeySpace:     engine.Ascend,
	glfw.KeyLeftShift: engine.Descend,
	glfw.KeyLeft:      engine.RotateLeft,
	glfw.KeyRight:     engine.RotateRight,
	glfw.KeyUp:        engine.LookUp,
	glfw.KeyDown:      engine.LookDown,
	glfw.KeyQ:         engine.RollCCW,
	glfw.KeyE:         engine.RollCW,
	glfw.KeyJ:         engine.FocusNear,
	glfw.KeyL:         engine.FocusFar,
	glfw.KeyM:         engine.ApertureShrink,
	glfw.KeyI:         engine.ApertureGrow,
	glfw.KeyEnter:     engine.ToggleMode,
}

// InputHandler polls a GLFW window and turns its state into controller
// snapshots. It must be used from the thread that owns the window.
type InputHandler struct {
	window   *glfw.Window
	bindings map[glfw.Key]engine.Symbol
}

// NewInputHandler creates a new input handler using DefaultBindings.
func NewInputHandler(window *glfw.Window) *InputHandler {
	return &InputHandler{
		window:   window,
		bindings: DefaultBindings,
	}
}

// Snapshot reads the currently held keys and the cursor position. No
// snapshot is available while the window is minimised or closing. The
// pointer is only reported while the cursor hovers a focused window.
func (ih *InputHandler) Snapshot() (engine.FrameInput, bool) {
	if ih.window.ShouldClose() || ih.window.GetAttrib(glfw.Iconified) == glfw.True {
		return engine.FrameInput{}, false
	}

	var in engine.FrameInput
	for key, sym := range ih.bindings {
		if ih.window.GetKey(key) == glfw.Press {
			in.Keys = in.Keys.Add(sym)
		}
	}

	if ih.window.GetAttrib(glfw.Focused) == glfw.True && ih.window.GetAttrib(glfw.Hovered) == glfw.True {
		x, y := ih.window.GetCursorPos()
		in.Pointer = engine.Pointer(float32(x), float32(y))
	}

	return in, true
}

// IsKeyDown reports whether key is currently held.
func (ih *InputHandler) IsKeyDown(key glfw.Key) bool {
	return ih.window.GetKey(key) == glfw.Press
}
