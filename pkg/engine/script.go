package engine

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// ErrEmptyScript is returned for input scripts without frames.
var ErrEmptyScript = errors.New("engine: input script has no frames")

// ScriptFrame is one recorded input snapshot.
type ScriptFrame struct {
	Keys    []Symbol    `yaml:"keys"`
	Pointer *[2]float32 `yaml:"pointer,omitempty"`

	// Skip marks a frame where the capture layer had no snapshot.
	Skip bool `yaml:"skip,omitempty"`

	// Repeat applies the frame this many times; 0 and 1 both mean once.
	Repeat int `yaml:"repeat,omitempty"`
}

// Input converts the frame to a controller snapshot.
func (f ScriptFrame) Input() FrameInput {
	in := FrameInput{Keys: Keys(f.Keys...)}
	if f.Pointer != nil {
		in.Pointer = Pointer(f.Pointer[0], f.Pointer[1])
	}
	return in
}

// Script is a recorded sequence of input snapshots.
type Script struct {
	Frames []ScriptFrame `yaml:"frames"`
}

// ParseScript decodes a YAML input script.
func ParseScript(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.UnmarshalStrict(data, script); err != nil {
		return nil, fmt.Errorf("engine: parse input script: %w", err)
	}
	if len(script.Frames) == 0 {
		return nil, ErrEmptyScript
	}
	for i, f := range script.Frames {
		if f.Repeat < 0 {
			return nil, fmt.Errorf("engine: input script frame %d: negative repeat %d", i, f.Repeat)
		}
	}
	return script, nil
}

// LoadScript reads and decodes a YAML input script from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("engine: read input script: %w", err)
	}
	return ParseScript(data)
}

// Len returns the number of polls the script expands to.
func (s *Script) Len() int {
	n := 0
	for _, f := range s.Frames {
		n += max(f.Repeat, 1)
	}
	return n
}

// ScriptSource replays a Script one poll at a time.
type ScriptSource struct {
	frames []ScriptFrame
	pos    int
}

// NewScriptSource expands repeated frames of s into a replayable source.
func NewScriptSource(s *Script) *ScriptSource {
	src := &ScriptSource{frames: make([]ScriptFrame, 0, s.Len())}
	for _, f := range s.Frames {
		for i := 0; i < max(f.Repeat, 1); i++ {
			src.frames = append(src.frames, f)
		}
	}
	return src
}

// Snapshot returns the next recorded frame. Skipped frames and an exhausted
// script both report ok = false; use Done to tell them apart.
func (s *ScriptSource) Snapshot() (FrameInput, bool) {
	if s.Done() {
		return FrameInput{}, false
	}

	f := s.frames[s.pos]
	s.pos++
	if f.Skip {
		return FrameInput{}, false
	}
	return f.Input(), true
}

// Done reports whether every frame has been consumed.
func (s *ScriptSource) Done() bool {
	return s.pos >= len(s.frames)
}

// Frame returns the index of the next frame to be replayed.
func (s *ScriptSource) Frame() int {
	return s.pos
}
