package engine

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"raytracer/internal/logger"
	"raytracer/pkg/config"
)

// FrameInput is the input snapshot for one poll.
type FrameInput struct {
	Keys    KeySet
	Pointer PointerSample
}

// InputSource supplies one snapshot per displayed frame.
type InputSource interface {
	// Snapshot returns the input for the next poll. ok is false when the
	// source cannot provide a snapshot, in which case the poll is skipped.
	Snapshot() (in FrameInput, ok bool)
}

// State is everything the controller carries from one poll to the next,
// apart from the accumulation buffer.
type State struct {
	Camera       Camera
	Rotation     mgl32.Mat4
	LastPointer  PointerSample
	DistancePass bool
	PrevKeys     KeySet
}

// NewState creates the initial state for cam. The rotation is composed from
// the camera's angles and no pointer sample has been seen yet.
func NewState(cam Camera) State {
	return State{
		Camera:   cam,
		Rotation: cam.Rotation(),
	}
}

// StepOptions holds the tunables used by Step.
type StepOptions struct {
	Table       *EffectTable
	Sensitivity float32
	Trigger     ToggleTrigger
}

// NewStepOptions converts the controls section of the configuration.
func NewStepOptions(cfg config.ControlsConfig) StepOptions {
	trigger := ToggleEdge
	if strings.EqualFold(cfg.ToggleTrigger, config.TriggerLevel) {
		trigger = ToggleLevel
	}
	return StepOptions{
		Table:       NewEffectTable(cfg),
		Sensitivity: cfg.LookSensitivity,
		Trigger:     trigger,
	}
}

// DefaultStepOptions returns the options for the default controls.
func DefaultStepOptions() StepOptions {
	return NewStepOptions(config.DefaultConfig().Controls)
}

// FrameResult describes the outcome of one poll.
type FrameResult struct {
	KeyUpdate
	LookUpdate

	// Moving is true when the camera translated or the pointer turned it
	// during this poll. It is not carried into the next poll.
	Moving bool

	// Invalidated is set by Session when the accumulation buffer was cleared.
	Invalidated bool

	// Skipped is set when no input snapshot was available.
	Skipped bool
}

// Invalidates reports whether accumulated samples no longer match the scene.
func (r FrameResult) Invalidates() bool {
	return r.PoseChanged || r.LookChanged || r.LensChanged || r.ToggleFired
}

// Step advances the controller by one poll. It does not touch the
// accumulation buffer; callers pass the result to Invalidate.
func Step(prev State, in FrameInput, opts StepOptions) (State, FrameResult) {
	var res FrameResult
	next := prev

	next.Camera, next.Rotation, res.KeyUpdate = UpdateCamera(
		prev.Camera, prev.Rotation, in.Keys, prev.PrevKeys, opts.Table, opts.Trigger,
	)
	next.Camera, next.Rotation, next.LastPointer, res.LookUpdate = MouseLook(
		next.Camera, next.Rotation, prev.LastPointer, in.Pointer, opts.Sensitivity,
	)

	if res.ToggleFired {
		next.DistancePass = !next.DistancePass
	}
	next.PrevKeys = in.Keys

	res.Moving = res.Translation != (mgl32.Vec3{}) || res.Delta != (mgl32.Vec2{})
	return next, res
}

// Session owns the controller state and the accumulation buffer for one
// interactive render. It is not safe for concurrent use; poll it from the
// thread that drives the render loop, before each sampling pass.
type Session struct {
	State  State
	Buffer *AccumulationBuffer

	opts   StepOptions
	logger *logger.Logger
	last   FrameResult
	frames uint64
}

// NewSession creates a session from the configuration.
func NewSession(cfg *config.Config, log *logger.Logger) *Session {
	return &Session{
		State:  NewState(NewCamera(cfg.Camera)),
		Buffer: NewAccumulationBuffer(cfg.Render.Width, cfg.Render.Height),
		opts:   NewStepOptions(cfg.Controls),
		logger: log,
	}
}

// Apply runs one poll with the given snapshot.
func (s *Session) Apply(in FrameInput) FrameResult {
	s.frames++

	var res FrameResult
	s.State, res = Step(s.State, in, s.opts)
	res.Invalidated = Invalidate(s.Buffer, res)

	if res.Invalidated && s.logger != nil {
		s.logger.Debugf("frame %d: accumulation reset; keys [%s] camera %s distance pass %t",
			s.frames, in.Keys, s.State.Camera, s.State.DistancePass)
	}

	s.last = res
	return res
}

// Poll reads a snapshot from src and applies it. When src has nothing to
// offer the poll is skipped and all persisted state is left untouched.
func (s *Session) Poll(src InputSource) FrameResult {
	in, ok := src.Snapshot()
	if !ok {
		s.last = FrameResult{Skipped: true}
		return s.last
	}
	return s.Apply(in)
}

// Moving reports the movement flag computed by the most recent poll.
func (s *Session) Moving() bool {
	return s.last.Moving
}

// DistancePass reports whether the alternate distance render mode is active.
func (s *Session) DistancePass() bool {
	return s.State.DistancePass
}

// Frames returns the number of polls applied so far, skipped polls excluded.
func (s *Session) Frames() uint64 {
	return s.frames
}
