package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerSample is an optional pointer position in source pixel units.
type PointerSample struct {
	Pos   mgl32.Vec2
	Valid bool
}

// Pointer returns a valid sample at (x, y).
func Pointer(x, y float32) PointerSample {
	return PointerSample{Pos: mgl32.Vec2{x, y}, Valid: true}
}

// LookUpdate summarises what the pointer did during one poll.
type LookUpdate struct {
	// Scaled pointer delta; zero when nothing changed.
	Delta mgl32.Vec2

	LookChanged bool
}

// MouseLook turns pointer motion into roll and pitch changes. last is the
// previous sample carried across polls; an invalid last means no real sample
// has been seen yet, in which case cur is only recorded. A sample with a
// non-finite coordinate is treated as absent.
func MouseLook(cam Camera, rot mgl32.Mat4, last, cur PointerSample, sensitivity float32) (Camera, mgl32.Mat4, PointerSample, LookUpdate) {
	if !cur.Valid || !finite(cur.Pos) {
		return cam, rot, last, LookUpdate{}
	}
	if !last.Valid {
		return cam, rot, cur, LookUpdate{}
	}

	delta := mgl32.Vec2{
		last.Pos[0] - cur.Pos[0],
		cur.Pos[1] - last.Pos[1],
	}.Mul(sensitivity)
	if delta[0] == 0 && delta[1] == 0 || !finite(delta) {
		return cam, rot, last, LookUpdate{}
	}

	cam.Angles[2] -= delta[0]
	cam.Angles[0] += delta[1]
	clampPitch(&cam)

	return cam, cam.Rotation(), cur, LookUpdate{Delta: delta, LookChanged: true}
}

func finite(v mgl32.Vec2) bool {
	for _, f := range v {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}
