package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"raytracer/internal/logger"
	"raytracer/internal/util"
)

// ErrInvalidConfig is returned by Validate for values the controller cannot use.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Toggle trigger modes for the distance-pass toggle.
const (
	TriggerEdge  = "edge"
	TriggerLevel = "level"
)

// Pitch limits shared by validation and the camera clamp. Kept as float32 so a
// pitch clamped by the camera always validates.
const (
	MinPitch = float32(-math.Pi / 2)
	MaxPitch = float32(math.Pi / 2)
)

// Config represents the main configuration
type Config struct {
	Controls ControlsConfig `yaml:"controls"`
	Camera   CameraConfig   `yaml:"camera"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ControlsConfig holds the per-poll input magnitudes. They are applied once
// per poll, so motion speed scales with the frame rate.
type ControlsConfig struct {
	MoveSpeed       float32 `yaml:"move_speed"`
	RotSpeed        float32 `yaml:"rot_speed"`
	FocusStep       float32 `yaml:"focus_step"`
	ApertureStep    float32 `yaml:"aperture_step"`
	LookSensitivity float32 `yaml:"look_sensitivity"` // radians per pointer pixel
	ToggleTrigger   string  `yaml:"toggle_trigger"`   // edge, level
}

// CameraConfig contains the initial camera pose and lens
type CameraConfig struct {
	Position      [3]float32 `yaml:"position"`
	Angles        [3]float32 `yaml:"angles"` // pitch, yaw, roll
	FocusDistance float32    `yaml:"focus_distance"`
	ApertureSize  float32    `yaml:"aperture_size"`
}

// RenderConfig contains accumulation buffer and preview settings
type RenderConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	FOV       float32 `yaml:"fov"` // vertical, degrees
	Seed      int64   `yaml:"seed"`
	FrameRate int     `yaml:"frame_rate"` // interactive cap; 0 disables
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional; stdout only when empty
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Controls: ControlsConfig{
			MoveSpeed:       0.2,
			RotSpeed:        0.1,
			FocusStep:       0.1,
			ApertureStep:    10.0,
			LookSensitivity: 0.01,
			ToggleTrigger:   TriggerEdge,
		},
		Camera: CameraConfig{
			FocusDistance: 5.0,
			ApertureSize:  0.0,
		},
		Render: RenderConfig{
			Width:     320,
			Height:    240,
			FOV:       60,
			Seed:      1,
			FrameRate: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. On error the returned
// config still holds usable defaults.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	if !util.FileExists(filePath) {
		return config, fmt.Errorf("config: %s not found, using defaults: %w", filePath, os.ErrNotExist)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config: read %s: %w", filePath, err)
	}

	if err = yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("config: parse %s: %w", filePath, err)
	}

	if err = config.Validate(); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("config: serialize: %w", err)
	}

	if err = util.CreateDirIfNotExist(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err = os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", filePath, err)
	}

	return nil
}

// Validate checks that the configuration can drive a render session.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	if c.Render.FrameRate < 0 {
		return fmt.Errorf("%w: negative frame rate %d", ErrInvalidConfig, c.Render.FrameRate)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidConfig, c.Render.FOV)
	}

	switch strings.ToLower(c.Controls.ToggleTrigger) {
	case TriggerEdge, TriggerLevel:
	default:
		return fmt.Errorf("%w: toggle_trigger %q", ErrInvalidConfig, c.Controls.ToggleTrigger)
	}

	if _, ok := logger.LookupLevel(c.Logging.Level); !ok {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Logging.Level)
	}

	if p := c.Camera.Angles[0]; !(p >= MinPitch && p <= MaxPitch) {
		return fmt.Errorf("%w: initial pitch %v outside [-pi/2, pi/2]", ErrInvalidConfig, c.Camera.Angles[0])
	}

	return nil
}
