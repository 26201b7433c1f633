package engine

import (
	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/config"
)

// Effect describes everything a single input symbol does during one poll.
// The classification flags are fixed by the constructors below so that the
// pose update, the rotation recompute and the invalidation decision all read
// the same entry.
type Effect struct {
	// Camera-local translation added to the per-poll accumulator.
	Translate mgl32.Vec3

	// Angle deltas applied directly to the camera: pitch, yaw, roll.
	Rotate mgl32.Vec3

	// Lens deltas.
	Focus    float32
	Aperture float32

	// Flips the distance-pass flag.
	Toggle bool

	pose     bool
	rotation bool
	lens     bool
}

func translation(x, y, z float32) Effect {
	return Effect{Translate: mgl32.Vec3{x, y, z}, pose: true}
}

func rotation(pitch, yaw, roll float32) Effect {
	return Effect{Rotate: mgl32.Vec3{pitch, yaw, roll}, pose: true, rotation: true}
}

func lens(focus, aperture float32) Effect {
	return Effect{Focus: focus, Aperture: aperture, lens: true}
}

func toggle() Effect {
	return Effect{Toggle: true}
}

// AffectsPose reports whether the effect moves or turns the camera.
func (e Effect) AffectsPose() bool { return e.pose }

// AffectsRotation reports whether the composite rotation must be recomputed.
func (e Effect) AffectsRotation() bool { return e.rotation }

// AffectsLens reports whether the effect changes focus distance or aperture.
func (e Effect) AffectsLens() bool { return e.lens }

// Invalidates reports whether firing the effect discards accumulated samples.
func (e Effect) Invalidates() bool { return e.pose || e.lens || e.Toggle }

// EffectTable maps every input symbol to its effect.
type EffectTable struct {
	entries [symbolCount]Effect
	mapped  [symbolCount]bool
}

// NewEffectTable builds the symbol table using the magnitudes from cfg.
func NewEffectTable(cfg config.ControlsConfig) *EffectTable {
	move, rot := cfg.MoveSpeed, cfg.RotSpeed

	t := &EffectTable{}
	t.set(MoveForward, translation(0, move, 0))
	t.set(MoveBack, translation(0, -move, 0))
	t.set(StrafeLeft, translation(-move, 0, 0))
	t.set(StrafeRight, translation(move, 0, 0))
	t.set(Ascend, translation(0, 0, move))
	t.set(Descend, translation(0, 0, -move))
	t.set(RotateLeft, rotation(0, 0, rot))
	t.set(RotateRight, rotation(0, 0, -rot))
	t.set(LookUp, rotation(rot, 0, 0))
	t.set(LookDown, rotation(-rot, 0, 0))
	t.set(RollCCW, rotation(0, rot, 0))
	t.set(RollCW, rotation(0, -rot, 0))
	t.set(FocusNear, lens(-cfg.FocusStep, 0))
	t.set(FocusFar, lens(cfg.FocusStep, 0))
	t.set(ApertureShrink, lens(0, -cfg.ApertureStep))
	t.set(ApertureGrow, lens(0, cfg.ApertureStep))
	t.set(ToggleMode, toggle())
	return t
}

// DefaultEffectTable returns the table built from the default controls.
func DefaultEffectTable() *EffectTable {
	return NewEffectTable(config.DefaultConfig().Controls)
}

func (t *EffectTable) set(s Symbol, e Effect) {
	t.entries[s] = e
	t.mapped[s] = true
}

// Lookup returns the effect bound to s. The second result is false for
// symbols without an entry.
func (t *EffectTable) Lookup(s Symbol) (Effect, bool) {
	if s >= symbolCount || !t.mapped[s] {
		return Effect{}, false
	}
	return t.entries[s], true
}
