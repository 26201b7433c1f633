package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"raytracer/internal/util"
	"raytracer/pkg/engine"
)

const gamma = 1 / 2.2

// Resolve averages the accumulated samples into a gamma corrected image.
// An empty buffer resolves to opaque black.
func Resolve(buf *engine.AccumulationBuffer) *image.RGBA {
	width, height := buf.Width(), buf.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := buf.Average(y*width + x)
			img.SetRGBA(x, y, color.RGBA{toByte(c[0]), toByte(c[1]), toByte(c[2]), 255})
		}
	}
	return img
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Pow(float64(v), gamma)*255 + 0.5)
}

// WriteWebP encodes img as a lossless WebP image.
func WriteWebP(w io.Writer, img image.Image) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("preview: encode webp: %w", err)
	}
	return nil
}

// SaveWebP writes img to path, creating parent directories as needed.
func SaveWebP(path string, img image.Image) error {
	if err := util.CreateDirIfNotExist(filepath.Dir(path)); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if err = WriteWebP(f, img); err != nil {
		return err
	}
	return f.Close()
}
