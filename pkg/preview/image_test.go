package preview

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"raytracer/internal/util"
	"raytracer/pkg/engine"
)

func TestResolve(t *testing.T) {
	buf := engine.NewAccumulationBuffer(3, 1)

	img := Resolve(buf)
	for x := 0; x < 3; x++ {
		if got := img.RGBAAt(x, 0); got != (color.RGBA{0, 0, 0, 255}) {
			t.Fatalf("expected opaque black before the first pass; got %v", got)
		}
	}

	buf.AddSample(0, engine.RGB(1, 0, 0))
	buf.AddSample(1, engine.RGB(3, -1, 0))
	buf.AddSample(2, engine.RGB(0.5, 0.5, 0.5))
	buf.EndPass()

	type spec struct {
		x   int
		exp color.RGBA
	}
	specs := []spec{
		{0, color.RGBA{255, 0, 0, 255}},
		{1, color.RGBA{255, 0, 0, 255}},
		{2, color.RGBA{186, 186, 186, 255}},
	}

	img = Resolve(buf)
	for index, s := range specs {
		if got := img.RGBAAt(s.x, 0); got != s.exp {
			t.Errorf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func TestWriteWebP(t *testing.T) {
	buf := engine.NewAccumulationBuffer(4, 4)
	for i := 0; i < buf.Len(); i++ {
		buf.AddSample(i, engine.RGB(0.2, 0.4, float32(i)/16))
	}
	buf.EndPass()

	var out bytes.Buffer
	if err := WriteWebP(&out, Resolve(buf)); err != nil {
		t.Fatalf("WriteWebP: %v", err)
	}

	data := out.Bytes()
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Fatalf("output is not a WebP container: % x", data[:min(len(data), 16)])
	}
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames", "last.webp")
	buf := engine.NewAccumulationBuffer(2, 2)

	if err := SaveWebP(path, Resolve(buf)); err != nil {
		t.Fatalf("SaveWebP: %v", err)
	}
	if !util.FileExists(path) {
		t.Fatalf("expected %s to exist", path)
	}
}
