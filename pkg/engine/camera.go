package engine

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/config"
)

const (
	minPitch = config.MinPitch
	maxPitch = config.MaxPitch
)

// Camera is the pose and lens consumed by the sampling engine.
type Camera struct {
	Position mgl32.Vec3

	// Euler angles in radians: X = pitch, Y = yaw, Z = roll.
	Angles mgl32.Vec3

	FocusDistance float32
	ApertureSize  float32
}

// NewCamera creates a camera from the configured initial pose.
func NewCamera(cfg config.CameraConfig) Camera {
	return Camera{
		Position:      mgl32.Vec3(cfg.Position),
		Angles:        mgl32.Vec3(cfg.Angles),
		FocusDistance: cfg.FocusDistance,
		ApertureSize:  cfg.ApertureSize,
	}
}

// Pitch returns the rotation about the local X axis.
func (c Camera) Pitch() float32 { return c.Angles[0] }

// Yaw returns the rotation about the local Y axis.
func (c Camera) Yaw() float32 { return c.Angles[1] }

// Roll returns the rotation about the local Z axis.
func (c Camera) Roll() float32 { return c.Angles[2] }

// Rotation composes the camera's current angles into a transform.
func (c Camera) Rotation() mgl32.Mat4 {
	return ComposeRotation(c.Pitch(), c.Yaw(), c.Roll())
}

func (c Camera) String() string {
	return fmt.Sprintf(
		"pos (%.3f, %.3f, %.3f) rot (%.3f, %.3f, %.3f) focus %.2f aperture %.2f",
		c.Position[0], c.Position[1], c.Position[2],
		c.Angles[0], c.Angles[1], c.Angles[2],
		c.FocusDistance, c.ApertureSize,
	)
}

// ComposeRotation builds Rz(roll) * Ry(yaw) * Rx(pitch). Translation
// direction depends on this exact order.
func ComposeRotation(pitch, yaw, roll float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(roll).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.HomogRotate3DX(pitch))
}

// clampPitch keeps the camera from flipping past vertical. Yaw and roll are
// left unbounded.
func clampPitch(c *Camera) {
	c.Angles[0] = mgl32.Clamp(c.Angles[0], minPitch, maxPitch)
}
