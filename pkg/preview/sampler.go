package preview

import (
	"math"
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	noise "raytracer/internal/math"
	"raytracer/pkg/config"
	"raytracer/pkg/engine"
)

const (
	groundHeight = -1.0
	groundScale  = 0.5
	fogDistance  = 40.0

	// Distance pass maps [0, maxDistance] to white..black.
	maxDistance = 20.0

	// Aperture is configured in millimetres of lens radius.
	apertureScale = 0.001
)

var (
	skyHorizon = engine.RGB(0.82, 0.86, 0.92)
	skyZenith  = engine.RGB(0.28, 0.46, 0.85)
	groundDark = engine.RGB(0.16, 0.22, 0.10)
	groundLit  = engine.RGB(0.46, 0.52, 0.28)
)

// Sampler is a small progressive ray caster: every call to Sample adds one
// jittered sample per pixel to an accumulation buffer. The scene is a sky
// gradient over a noise-textured ground plane.
type Sampler struct {
	fov     float32 // vertical, radians
	seed    int64
	workers int
	passes  int64
}

// NewSampler creates a sampler for the given render settings.
func NewSampler(cfg config.RenderConfig) *Sampler {
	return &Sampler{
		fov:     mgl32.DegToRad(cfg.FOV),
		seed:    cfg.Seed,
		workers: runtime.NumCPU(),
	}
}

// Sample traces one pass for the camera in state and adds it to buf. Rows
// are split between worker goroutines; each worker owns its jitter source.
func (s *Sampler) Sample(state engine.State, buf *engine.AccumulationBuffer) {
	width, height := buf.Width(), buf.Height()
	if width == 0 || height == 0 {
		return
	}
	s.passes++

	workers := max(min(s.workers, height), 1)
	rowsPerWorker := height / workers

	var wg sync.WaitGroup
	for g := 0; g < workers; g++ {
		startRow := g * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if g == workers-1 {
			endRow = height
		}

		wg.Add(1)
		go func(g, startRow, endRow int) {
			defer wg.Done()

			ng := noise.NewNoiseGenerator(s.seed*7919 + s.passes*int64(workers) + int64(g))
			for y := startRow; y < endRow; y++ {
				for x := 0; x < width; x++ {
					origin, dir := s.primaryRay(state, ng, x, y, width, height)
					buf.AddSample(y*width+x, s.trace(origin, dir, state.DistancePass))
				}
			}
		}(g, startRow, endRow)
	}
	wg.Wait()

	buf.EndPass()
}

// Passes returns the number of passes traced since the sampler was created.
func (s *Sampler) Passes() int64 {
	return s.passes
}

// primaryRay builds a jittered camera ray for pixel (x, y). Locally the
// camera looks along +Y with +X right and +Z up. A non-zero aperture turns
// the pinhole into a thin lens focused FocusDistance ahead.
func (s *Sampler) primaryRay(state engine.State, ng *noise.NoiseGenerator, x, y, width, height int) (mgl32.Vec3, mgl32.Vec3) {
	tanHalf := float32(math.Tan(float64(s.fov) / 2))
	aspect := float32(width) / float32(height)

	px := (float32(x)+float32(ng.RandomFloat()))/float32(width)*2 - 1
	py := 1 - (float32(y)+float32(ng.RandomFloat()))/float32(height)*2

	local := mgl32.Vec3{px * tanHalf * aspect, 1, py * tanHalf}
	cam, rot := state.Camera, state.Rotation

	origin := cam.Position
	dir := rot.Mul4x1(local.Vec4(0)).Vec3()

	radius := cam.ApertureSize * apertureScale
	if radius > 0 && cam.FocusDistance > 0 {
		focus := origin.Add(dir.Mul(cam.FocusDistance))

		angle := ng.RandomRange(0, 2*math.Pi)
		r := radius * float32(math.Sqrt(ng.RandomFloat()))
		lens := mgl32.Vec4{r * float32(math.Cos(angle)), 0, r * float32(math.Sin(angle)), 0}

		origin = origin.Add(rot.Mul4x1(lens).Vec3())
		dir = focus.Sub(origin)
	}

	return origin, dir.Normalize()
}

func (s *Sampler) trace(origin, dir mgl32.Vec3, distancePass bool) engine.Color {
	t, hit := intersectGround(origin, dir)

	if distancePass {
		if !hit {
			return engine.Color{}
		}
		g := 1 - mgl32.Clamp(t/maxDistance, 0, 1)
		return engine.RGB(g, g, g)
	}

	if !hit {
		return sky(dir)
	}

	p := origin.Add(dir.Mul(t))
	n := noise.FBM2D(float64(p[0])*groundScale, float64(p[1])*groundScale, 4, 2, 0.5, s.seed)
	base := mix(groundDark, groundLit, mgl32.Clamp(float32(n+1)/2, 0, 1))

	fog := 1 - float32(math.Exp(float64(-t/fogDistance)))
	return mix(base, skyHorizon, fog)
}

// intersectGround hits the plane z = groundHeight from above only.
func intersectGround(origin, dir mgl32.Vec3) (float32, bool) {
	if origin[2] <= groundHeight || dir[2] >= 0 {
		return 0, false
	}
	return (groundHeight - origin[2]) / dir[2], true
}

func sky(dir mgl32.Vec3) engine.Color {
	return mix(skyHorizon, skyZenith, mgl32.Clamp(dir[2], 0, 1))
}

func mix(a, b engine.Color, t float32) engine.Color {
	return a.Mul(1 - t).Add(b.Mul(t))
}
