package preview

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/pkg/config"
	"raytracer/pkg/engine"
)

func testState(angles mgl32.Vec3, distancePass bool) engine.State {
	state := engine.NewState(engine.Camera{Angles: angles, FocusDistance: 5})
	state.DistancePass = distancePass
	return state
}

func TestSampleAddsOnePass(t *testing.T) {
	s := NewSampler(config.DefaultConfig().Render)
	buf := engine.NewAccumulationBuffer(8, 6)

	s.Sample(testState(mgl32.Vec3{}, false), buf)
	if buf.Samples != 1 || s.Passes() != 1 {
		t.Fatalf("expected one pass; got %d samples, %d passes", buf.Samples, s.Passes())
	}

	s.Sample(testState(mgl32.Vec3{}, false), buf)
	if buf.Samples != 2 {
		t.Fatalf("expected two passes; got %d", buf.Samples)
	}
}

func TestSampleSkyAndGround(t *testing.T) {
	s := NewSampler(config.DefaultConfig().Render)
	buf := engine.NewAccumulationBuffer(8, 6)
	s.Sample(testState(mgl32.Vec3{}, false), buf)

	for x := 0; x < buf.Width(); x++ {
		top := buf.Average(x)
		if top[2] <= top[1] {
			t.Errorf("top row pixel %d should be sky blue; got %v", x, top)
		}

		bottom := buf.Average((buf.Height()-1)*buf.Width() + x)
		if bottom[1] <= bottom[2] {
			t.Errorf("bottom row pixel %d should be ground; got %v", x, bottom)
		}
	}
}

func TestSampleDistancePass(t *testing.T) {
	type spec struct {
		angles      mgl32.Vec3
		topHit      bool
		bottomHit   bool
		description string
	}
	specs := []spec{
		{mgl32.Vec3{}, false, true, "level"},
		{mgl32.Vec3{float32(math.Pi / 2), 0, 0}, false, false, "looking up"},
		{mgl32.Vec3{float32(-math.Pi / 2), 0, 0}, true, true, "looking down"},
	}

	for index, sp := range specs {
		s := NewSampler(config.DefaultConfig().Render)
		buf := engine.NewAccumulationBuffer(8, 6)
		s.Sample(testState(sp.angles, true), buf)

		top := buf.Average(0)
		bottom := buf.Average(buf.Len() - 1)
		if (top != engine.Color{}) != sp.topHit {
			t.Errorf("[spec %d] %s: unexpected top pixel %v", index, sp.description, top)
		}
		if (bottom != engine.Color{}) != sp.bottomHit {
			t.Errorf("[spec %d] %s: unexpected bottom pixel %v", index, sp.description, bottom)
		}
		if bottom[0] != bottom[1] || bottom[1] != bottom[2] {
			t.Errorf("[spec %d] %s: distance pass must be grey; got %v", index, sp.description, bottom)
		}
	}
}

func TestSampleIsReproducible(t *testing.T) {
	state := testState(mgl32.Vec3{0.2, 0, 0.4}, false)
	state.Camera.ApertureSize = 20

	a, b := engine.NewAccumulationBuffer(5, 4), engine.NewAccumulationBuffer(5, 4)
	NewSampler(config.DefaultConfig().Render).Sample(state, a)
	NewSampler(config.DefaultConfig().Render).Sample(state, b)

	for i := range a.Pixels() {
		if a.Pixels()[i] != b.Pixels()[i] {
			t.Fatalf("pixel %d differs between identical samplers", i)
		}
	}
}

func TestSampleEmptyBuffer(t *testing.T) {
	s := NewSampler(config.DefaultConfig().Render)
	buf := engine.NewAccumulationBuffer(0, 0)

	s.Sample(testState(mgl32.Vec3{}, false), buf)
	if buf.Samples != 0 || s.Passes() != 0 {
		t.Fatal("an empty buffer must not count a pass")
	}
}

func TestIntersectGround(t *testing.T) {
	tHit, ok := intersectGround(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1})
	if !ok || !mgl32.FloatEqual(tHit, 1) {
		t.Fatalf("expected a hit at 1; got %v, %t", tHit, ok)
	}
	if _, ok = intersectGround(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}); ok {
		t.Error("horizontal rays never reach the ground")
	}
	if _, ok = intersectGround(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}); ok {
		t.Error("the ground is only visible from above")
	}
}
