package engine

import "testing"

func filledBuffer(w, h int, samples uint32) *AccumulationBuffer {
	b := NewAccumulationBuffer(w, h)
	for i := 0; i < b.Len(); i++ {
		b.AddSample(i, RGB(1, 0.5, 0.25))
	}
	b.Samples = samples
	return b
}

func TestAccumulationAverage(t *testing.T) {
	b := NewAccumulationBuffer(2, 1)
	if got := b.Average(0); got != (Color{}) {
		t.Fatalf("expected black before the first pass; got %v", got)
	}

	b.AddSample(0, RGB(1, 0, 0))
	b.AddSample(1, RGB(0, 0, 1))
	b.EndPass()
	b.AddSample(0, RGB(0, 1, 0))
	b.AddSample(1, RGB(0, 0, 1))
	b.EndPass()

	if b.Samples != 2 {
		t.Fatalf("expected 2 samples; got %d", b.Samples)
	}
	if got := b.Average(0); got != RGB(0.5, 0.5, 0) {
		t.Errorf("Average(0) = %v", got)
	}
	if got := b.Average(1); got != RGB(0, 0, 1) {
		t.Errorf("Average(1) = %v", got)
	}
}

func TestAccumulationClear(t *testing.T) {
	b := filledBuffer(3, 2, 9)
	b.Clear()

	if b.Samples != 0 {
		t.Errorf("expected sample counter 0; got %d", b.Samples)
	}
	for i, c := range b.Pixels() {
		if c != (Color{}) {
			t.Fatalf("pixel %d not cleared: %v", i, c)
		}
	}
	if b.Width() != 3 || b.Height() != 2 || b.Len() != 6 {
		t.Error("Clear must keep the dimensions")
	}
}

func TestAccumulationResize(t *testing.T) {
	b := filledBuffer(2, 2, 3)
	b.Resize(4, 3)
	if b.Width() != 4 || b.Height() != 3 || b.Len() != 12 || b.Samples != 0 {
		t.Fatalf("unexpected buffer after resize: %dx%d len %d samples %d", b.Width(), b.Height(), b.Len(), b.Samples)
	}

	b = filledBuffer(2, 2, 3)
	b.Resize(2, 2)
	if b.Samples != 0 || b.Pixels()[0] != (Color{}) {
		t.Fatal("resizing to the same size must still clear")
	}

	b.Resize(-1, 5)
	if b.Len() != 0 {
		t.Fatalf("negative sizes allocate nothing; got %d pixels", b.Len())
	}
}

func TestInvalidate(t *testing.T) {
	type spec struct {
		res FrameResult
		exp bool
	}
	specs := []spec{
		{FrameResult{}, false},
		{FrameResult{Moving: true}, false},
		{FrameResult{KeyUpdate: KeyUpdate{PoseChanged: true}}, true},
		{FrameResult{KeyUpdate: KeyUpdate{LensChanged: true}}, true},
		{FrameResult{KeyUpdate: KeyUpdate{ToggleFired: true}}, true},
		{FrameResult{LookUpdate: LookUpdate{LookChanged: true}}, true},
	}

	for index, s := range specs {
		b := filledBuffer(2, 2, 5)
		if got := Invalidate(b, s.res); got != s.exp {
			t.Fatalf("[spec %d] expected Invalidate to return %t; got %t", index, s.exp, got)
		}
		if s.exp && b.Samples != 0 {
			t.Errorf("[spec %d] expected cleared buffer", index)
		}
		if !s.exp && b.Samples != 5 {
			t.Errorf("[spec %d] buffer must keep its samples", index)
		}
	}
}
