package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagBalls      = flag.String("balls", "", "Path to the ball list")
	flagLevel      = flag.String("level", "", "Directory holding the level assets")
	flagPanel      = flag.String("panel", "", "Operator panel listen address")
	flagNoPanel    = flag.Bool("no-panel", false, "Disable the operator panel")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Window.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagBalls != "" {
		cfg.Session.BallsFile = *flagBalls
	}
	if *flagLevel != "" {
		cfg.Level.Dir = *flagLevel
	}
	if *flagPanel != "" {
		cfg.Panel.Addr = *flagPanel
		cfg.Panel.Enabled = true
	}
	if *flagNoPanel {
		cfg.Panel.Enabled = false
	}
}
