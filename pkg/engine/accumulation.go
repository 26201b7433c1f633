package engine

import "golang.org/x/image/math/f32"

// Color is a linear RGB value.
type Color f32.Vec3

// RGB creates a colour.
func RGB(r, g, b float32) Color {
	return Color{r, g, b}
}

// Add returns the component-wise sum of two colours.
func (c Color) Add(o Color) Color {
	return Color{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Mul scales a colour.
func (c Color) Mul(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// AccumulationBuffer holds one running colour sum per pixel and the number of
// passes accumulated since the last clear.
type AccumulationBuffer struct {
	width  int
	height int
	pixels []Color

	// Samples counts complete passes since the last Clear.
	Samples uint32
}

// NewAccumulationBuffer allocates a zeroed buffer of width*height pixels.
func NewAccumulationBuffer(width, height int) *AccumulationBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &AccumulationBuffer{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the buffer width in pixels.
func (b *AccumulationBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *AccumulationBuffer) Height() int { return b.height }

// Len returns the number of pixels.
func (b *AccumulationBuffer) Len() int { return len(b.pixels) }

// Pixels exposes the raw running sums in row-major order.
func (b *AccumulationBuffer) Pixels() []Color { return b.pixels }

// Clear zeroes every pixel in a single pass and resets the sample counter.
func (b *AccumulationBuffer) Clear() {
	for i := range b.pixels {
		b.pixels[i] = Color{}
	}
	b.Samples = 0
}

// Resize reallocates the buffer for new dimensions. The buffer is always left
// cleared, since samples from a different resolution cannot be reused.
func (b *AccumulationBuffer) Resize(width, height int) {
	if width == b.width && height == b.height {
		b.Clear()
		return
	}
	*b = *NewAccumulationBuffer(width, height)
}

// AddSample adds c to the running sum of pixel i.
func (b *AccumulationBuffer) AddSample(i int, c Color) {
	b.pixels[i] = b.pixels[i].Add(c)
}

// EndPass records that every pixel received one more sample.
func (b *AccumulationBuffer) EndPass() {
	b.Samples++
}

// Average returns the mean colour of pixel i, or black before the first pass.
func (b *AccumulationBuffer) Average(i int) Color {
	if b.Samples == 0 {
		return Color{}
	}
	return b.pixels[i].Mul(1.0 / float32(b.Samples))
}

// Invalidate discards all accumulated samples when res reports a pose, look,
// lens or render-mode change. It reports whether the buffer was cleared.
func Invalidate(b *AccumulationBuffer, res FrameResult) bool {
	if !res.Invalidates() {
		return false
	}
	b.Clear()
	return true
}
