package noise

import (
	"math"
	"math/rand"
)

// NoiseGenerator is a utility for generating random jitter and coherent noise.
// It is not safe for concurrent use; give every worker its own generator.
type NoiseGenerator struct {
	rng *rand.Rand
}

// NewNoiseGenerator creates a new noise generator with the given seed
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	return &NoiseGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// RandomFloat returns a random float in range [0.0, 1.0)
func (ng *NoiseGenerator) RandomFloat() float64 {
	return ng.rng.Float64()
}

// RandomRange returns a random float in range [min, max)
func (ng *NoiseGenerator) RandomRange(min, max float64) float64 {
	return min + ng.rng.Float64()*(max-min)
}

// Perlin2D generates 2D Perlin noise in roughly [-1, 1]. The result depends
// only on the coordinates and the seed, never on the generator state.
func Perlin2D(x, y float64, seed int64) float64 {
	x0 := math.Floor(x)
	x1 := x0 + 1.0
	y0 := math.Floor(y)
	y1 := y0 + 1.0

	sx := smoothstep(x - x0)
	sy := smoothstep(y - y0)

	g00 := gradient2D(hash(int(x0), int(y0), int(seed)))
	g10 := gradient2D(hash(int(x1), int(y0), int(seed)))
	g01 := gradient2D(hash(int(x0), int(y1), int(seed)))
	g11 := gradient2D(hash(int(x1), int(y1), int(seed)))

	dp00 := dot2D(g00, x-x0, y-y0)
	dp10 := dot2D(g10, x-x1, y-y0)
	dp01 := dot2D(g01, x-x0, y-y1)
	dp11 := dot2D(g11, x-x1, y-y1)

	v0 := lerp(dp00, dp10, sx)
	v1 := lerp(dp01, dp11, sx)
	return lerp(v0, v1, sy)
}

// FBM2D sums octaves of Perlin noise (fractal Brownian motion), normalised
// by the total amplitude.
func FBM2D(x, y float64, octaves int, lacunarity, gain float64, seed int64) float64 {
	result := 0.0
	amplitude := 1.0
	frequency := 1.0
	total := 0.0

	for i := 0; i < octaves; i++ {
		result += Perlin2D(x*frequency, y*frequency, seed+int64(i)) * amplitude
		total += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}
	if total == 0 {
		return 0
	}
	return result / total
}

// hash combines the coordinates and seed to create a unique hash
func hash(x, y, seed int) int {
	h := seed + x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// gradient2D picks one of eight gradients from a hash
func gradient2D(hash int) [2]float64 {
	switch hash & 7 {
	case 0:
		return [2]float64{1, 0}
	case 1:
		return [2]float64{-1, 0}
	case 2:
		return [2]float64{0, 1}
	case 3:
		return [2]float64{0, -1}
	case 4:
		return [2]float64{1, 1}
	case 5:
		return [2]float64{-1, 1}
	case 6:
		return [2]float64{1, -1}
	default:
		return [2]float64{-1, -1}
	}
}

func dot2D(g [2]float64, x, y float64) float64 {
	return g[0]*x + g[1]*y
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// smoothstep is the improved Perlin fade: 6t^5 - 15t^4 + 10t^3
func smoothstep(t float64) float64 {
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}
