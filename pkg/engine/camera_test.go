package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/config"
)

const epsilon = 1e-5

// vecApprox and matApprox compare component-wise with an absolute tolerance.
// mgl32's ApproxEqualThreshold is relative, which is too strict next to zero.
func vecApprox(a, b mgl32.Vec3) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) >= epsilon {
			return false
		}
	}
	return true
}

func matApprox(a, b mgl32.Mat4) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) >= epsilon {
			return false
		}
	}
	return true
}

func TestComposeRotationIdentity(t *testing.T) {
	if !matApprox(ComposeRotation(0, 0, 0), mgl32.Ident4()) {
		t.Fatal("zero angles must compose to identity")
	}
}

func TestComposeRotationOrder(t *testing.T) {
	type spec struct {
		pitch, yaw, roll float32
		in, exp          mgl32.Vec3
	}
	halfPi := float32(math.Pi / 2)
	specs := []spec{
		// Rx(pi/2) takes local +Y to +Z.
		{halfPi, 0, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		// Ry applied after Rx: Ry(pi/2) * (0, 0, 1) = (1, 0, 0).
		{halfPi, halfPi, 0, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
		// Rz applied last: Rz(pi/2) * (0, 1, 0) = (-1, 0, 0).
		{0, 0, halfPi, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, 0, 0}},
		{halfPi, 0, halfPi, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	for index, s := range specs {
		m := ComposeRotation(s.pitch, s.yaw, s.roll)
		got := m.Mul4x1(s.in.Vec4(0)).Vec3()
		if !vecApprox(got, s.exp) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, got)
		}

		exp := mgl32.HomogRotate3DZ(s.roll).Mul4(mgl32.HomogRotate3DY(s.yaw)).Mul4(mgl32.HomogRotate3DX(s.pitch))
		if !matApprox(m, exp) {
			t.Fatalf("[spec %d] composition differs from Rz*Ry*Rx", index)
		}
	}
}

func TestComposeRotationIsNotCommutative(t *testing.T) {
	halfPi := float32(math.Pi / 2)
	zyx := ComposeRotation(halfPi, halfPi, 0).Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	xyz := mgl32.HomogRotate3DX(halfPi).Mul4(mgl32.HomogRotate3DY(halfPi)).Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	if vecApprox(zyx, xyz) {
		t.Fatal("expected a different result for the reversed multiplication order")
	}
}

func TestNewCamera(t *testing.T) {
	cam := NewCamera(config.CameraConfig{
		Position:      [3]float32{1, 2, 3},
		Angles:        [3]float32{0.1, 0.2, 0.3},
		FocusDistance: 4,
		ApertureSize:  5,
	})

	if cam.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Position = %v", cam.Position)
	}
	if cam.Pitch() != 0.1 || cam.Yaw() != 0.2 || cam.Roll() != 0.3 {
		t.Errorf("Angles = %v", cam.Angles)
	}
	if cam.FocusDistance != 4 || cam.ApertureSize != 5 {
		t.Errorf("lens = (%v, %v)", cam.FocusDistance, cam.ApertureSize)
	}
	if !matApprox(cam.Rotation(), ComposeRotation(0.1, 0.2, 0.3)) {
		t.Error("Rotation() must compose the camera's own angles")
	}
}
