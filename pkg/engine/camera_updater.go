package engine

import "github.com/go-gl/mathgl/mgl32"

// ToggleTrigger selects when a held toggle symbol fires.
type ToggleTrigger uint8

const (
	// ToggleEdge fires once on the poll where the symbol becomes pressed.
	ToggleEdge ToggleTrigger = iota

	// ToggleLevel fires on every poll the symbol is held.
	ToggleLevel
)

// KeyUpdate summarises what the pressed-key set did during one poll.
type KeyUpdate struct {
	// Camera-local translation accumulated this poll, before rotation.
	Translation mgl32.Vec3

	PoseChanged     bool
	RotationChanged bool
	LensChanged     bool
	ToggleFired     bool
}

// UpdateCamera applies the effect table to the pressed-key set and returns the
// updated camera, the (possibly recomputed) rotation and a summary of what
// fired. prev is the pressed set from the previous poll and only matters for
// toggles under ToggleEdge.
func UpdateCamera(cam Camera, rot mgl32.Mat4, keys, prev KeySet, table *EffectTable, trigger ToggleTrigger) (Camera, mgl32.Mat4, KeyUpdate) {
	var upd KeyUpdate

	pressed := keys.Pressed(prev)
	for _, s := range keys.Symbols() {
		effect, ok := table.Lookup(s)
		if !ok {
			continue
		}

		if effect.Toggle {
			if trigger == ToggleLevel || pressed.Has(s) {
				upd.ToggleFired = true
			}
			continue
		}

		upd.Translation = upd.Translation.Add(effect.Translate)
		cam.Angles = cam.Angles.Add(effect.Rotate)
		cam.FocusDistance += effect.Focus
		cam.ApertureSize += effect.Aperture

		upd.PoseChanged = upd.PoseChanged || effect.AffectsPose()
		upd.RotationChanged = upd.RotationChanged || effect.AffectsRotation()
		upd.LensChanged = upd.LensChanged || effect.AffectsLens()
	}

	if upd.RotationChanged {
		clampPitch(&cam)
		rot = cam.Rotation()
	}

	// Translation is camera relative: rotate the local vector as a direction.
	cam.Position = cam.Position.Add(rot.Mul4x1(upd.Translation.Vec4(0)).Vec3())

	return cam, rot, upd
}
