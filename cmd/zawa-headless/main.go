// zawa-headless runs the ball-drop simulation without a window and logs
// where every ball ends up.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/app"
	"github.com/thirdlf03/zawa/internal/config"
	"github.com/thirdlf03/zawa/internal/logger"
	"github.com/thirdlf03/zawa/internal/scene"
)

var (
	flagDuration = flag.Duration("duration", 20*time.Second, "Simulated time to run")
	flagRate     = flag.Float64("rate", 60, "Frames per simulated second")
	flagRealtime = flag.Bool("realtime", false, "Pace frames to the wall clock")
	flagReport   = flag.Duration("report", 5*time.Second, "Simulated time between state reports")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.InitWithOptions(cfg.Logging.Options(os.Stdout)); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("headless run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if *flagRate <= 0 {
		return fmt.Errorf("rate must be positive, got %v", *flagRate)
	}

	h := app.NewHost(cfg, cfg.Window.Width, cfg.Window.Height)
	defer h.Close()
	h.Start()

	go func() {
		if err := h.ServePanel(ctx); err != nil {
			logger.Error("panel stopped", zap.Error(err))
		}
	}()

	frame := 1 / *flagRate
	var ticker *time.Ticker
	if *flagRealtime {
		ticker = time.NewTicker(time.Duration(frame * float64(time.Second)))
		defer ticker.Stop()
	}

	// Simulated time restarts on reset, so track it per session.
	var simulated, nextReport float64
	session := h.Session()
	for simulated < flagDuration.Seconds() {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		h.Frame(frame)
		if h.Session() != session {
			session = h.Session()
			simulated, nextReport = 0, 0
			continue
		}
		simulated += frame

		if simulated >= nextReport {
			report(session)
			nextReport += flagReport.Seconds()
		}
	}
	report(session)
	return nil
}

func report(s *scene.Session) {
	st := s.Snapshot()
	logger.Info("state",
		zap.String("phase", st.Phase),
		zap.Float64("time", st.Time),
		zap.Int("goals", st.Goals),
		zap.Int("attracted", s.Field().Attracted()))
	for _, b := range st.Balls {
		logger.Info("ball",
			zap.String("name", b.Name),
			zap.Int("priority", b.Priority),
			zap.Float32s("position", b.Position[:]),
			zap.Bool("attracted", b.Attracted))
	}
}
