// Package config handles application configuration loading and management.
package config

import (
	"io"

	"github.com/thirdlf03/zawa/internal/attraction"
	"github.com/thirdlf03/zawa/internal/ball"
	"github.com/thirdlf03/zawa/internal/engine/camera"
	"github.com/thirdlf03/zawa/internal/engine/viewport"
	"github.com/thirdlf03/zawa/internal/level"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/panel"
	"github.com/thirdlf03/zawa/internal/physics"
	"github.com/thirdlf03/zawa/internal/scene"
	"github.com/thirdlf03/zawa/pkg/math"
)

// Config holds all settings.
type Config struct {
	Window     WindowConfig      `yaml:"window"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Attraction attraction.Config `yaml:"attraction"`
	Viewports  ViewportConfig    `yaml:"viewports"`
	Level      LevelConfig       `yaml:"level"`
	Session    SessionConfig     `yaml:"session"`
	Panel      panel.Config      `yaml:"panel"`
	Audio      AudioConfig       `yaml:"audio"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	ShowFPS    bool   `yaml:"show_fps"`
	Samples    int    `yaml:"samples"`

	// ScreenshotDir receives F12 captures.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// PhysicsConfig holds world settings.
type PhysicsConfig struct {
	Gravity     math.Vec3 `yaml:"gravity"`
	StepRate    float64   `yaml:"step_rate"` // sub-steps per second
	MaxSubSteps int       `yaml:"max_sub_steps"`
	Iterations  int       `yaml:"iterations"`
	// MaxFrameDelta caps the seconds simulated per rendered frame.
	MaxFrameDelta float64 `yaml:"max_frame_delta"`
}

// ViewportConfig holds the view layout and camera placements.
type ViewportConfig struct {
	PrimaryFraction float64         `yaml:"primary_fraction"`
	Presets         []camera.Preset `yaml:"presets"`
	Observers       []camera.Preset `yaml:"observers"`
	PresetTween     float32         `yaml:"preset_tween"`
}

// LevelConfig holds level asset settings. An empty asset list means the
// stock level under Dir.
type LevelConfig struct {
	Dir     string        `yaml:"dir"`
	Workers int           `yaml:"workers"`
	Assets  []level.Asset `yaml:"assets"`
}

// SessionConfig holds the ball list location and spawn settings.
type SessionConfig struct {
	BallsFile  string    `yaml:"balls_file"`
	BallRadius float32   `yaml:"ball_radius"`
	RingCenter math.Vec3 `yaml:"ring_center"`
	RingRadius float32   `yaml:"ring_radius"`
	ColorSeed  uint64    `yaml:"color_seed"`
}

// AudioConfig holds cue playback settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	// JSON switches the log file to one JSON object per line.
	JSON       bool `yaml:"json"`
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
}

// Options converts the settings for logger.InitWithOptions. Console output
// goes to console, or nowhere when it is nil.
func (l LoggingConfig) Options(console io.Writer) logger.Options {
	opts := logger.Options{Level: l.Level, Console: console}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
		opts.File.JSON = l.JSON
		if l.MaxSizeMB > 0 {
			opts.File.MaxSizeMB = l.MaxSizeMB
		}
		if l.MaxBackups > 0 {
			opts.File.MaxBackups = l.MaxBackups
		}
	}
	return opts
}

// Default returns a Config with sensible default values.
func Default() *Config {
	phys := physics.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:      "zawa",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    false,
			Samples:    4,

			ScreenshotDir: "screenshots",
		},
		Physics: PhysicsConfig{
			Gravity:       phys.Gravity,
			StepRate:      1 / phys.FixedStep,
			MaxSubSteps:   phys.MaxSubSteps,
			Iterations:    phys.Iterations,
			MaxFrameDelta: 0.05,
		},
		Attraction: attraction.DefaultConfig(),
		Viewports: ViewportConfig{
			PrimaryFraction: viewport.DefaultConfig().PrimaryFraction,
			Presets:         camera.DefaultPresets(),
			Observers:       camera.DefaultObservers(),
			PresetTween:     0.6,
		},
		Level: LevelConfig{
			Dir:     "assets",
			Workers: 4,
		},
		Session: SessionConfig{
			BallsFile:  "balls.yaml",
			BallRadius: ball.DefaultRadius,
			RingCenter: ball.DefaultRing.Center,
			RingRadius: ball.DefaultRing.Radius,
			ColorSeed:  1,
		},
		Panel: panel.DefaultConfig(),
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Scene converts the settings into a scene configuration.
func (c *Config) Scene() scene.Config {
	phys := physics.DefaultConfig()
	phys.Gravity = c.Physics.Gravity
	if c.Physics.StepRate > 0 {
		phys.FixedStep = 1 / c.Physics.StepRate
	}
	if c.Physics.MaxSubSteps > 0 {
		phys.MaxSubSteps = c.Physics.MaxSubSteps
	}
	if c.Physics.Iterations > 0 {
		phys.Iterations = c.Physics.Iterations
	}

	return scene.Config{
		Physics:       phys,
		Attraction:    c.Attraction,
		Viewport:      viewport.Config{PrimaryFraction: c.Viewports.PrimaryFraction},
		Presets:       c.Viewports.Presets,
		Observers:     c.Viewports.Observers,
		PresetTween:   c.Viewports.PresetTween,
		MaxFrameDelta: c.Physics.MaxFrameDelta,
		Ring:          ball.Ring{Center: c.Session.RingCenter, Radius: c.Session.RingRadius},
		BallRadius:    c.Session.BallRadius,
		ColorSeed:     c.Session.ColorSeed,
	}
}

// Assets returns the configured level assets, or the stock level.
func (c *Config) Assets() []level.Asset {
	if len(c.Level.Assets) > 0 {
		return c.Level.Assets
	}
	return level.DefaultAssets(c.Level.Dir)
}
