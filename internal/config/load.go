package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Explicit path takes priority over the standard locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// CLI flags win
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Physics.StepRate <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("physics.step_rate %v must be positive", c.Physics.StepRate))
	}
	if c.Physics.MaxSubSteps <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("physics.max_sub_steps %d must be positive", c.Physics.MaxSubSteps))
	}
	if !c.Physics.Gravity.IsFinite() {
		errs = multierr.Append(errs, errors.New("physics.gravity must be finite"))
	}
	if f := c.Viewports.PrimaryFraction; f <= 0 || f > 1 {
		errs = multierr.Append(errs, fmt.Errorf("viewports.primary_fraction %v must be in (0, 1]", f))
	}
	if len(c.Viewports.Presets) == 0 {
		errs = multierr.Append(errs, errors.New("viewports.presets must not be empty"))
	}
	if c.Attraction.Threshold < 0 {
		errs = multierr.Append(errs, fmt.Errorf("attraction.threshold %v must not be negative", c.Attraction.Threshold))
	}
	if c.Session.BallRadius <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("session.ball_radius %v must be positive", c.Session.BallRadius))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = multierr.Append(errs, fmt.Errorf("audio.volume %v must be in [0, 1]", c.Audio.Volume))
	}
	if c.Panel.Enabled && c.Panel.Addr == "" {
		errs = multierr.Append(errs, errors.New("panel.addr is required when the panel is enabled"))
	}
	return errs
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Zawa")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Zawa")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "zawa")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "zawa")
	}
}

// loadFromFile merges a YAML file over the values already in cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
