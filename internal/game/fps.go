package game

import "time"

// fpsCounter reports the frame rate once per interval.
type fpsCounter struct {
	interval time.Duration
	start    time.Time
	frames   int
	worst    time.Duration
}

func newFPSCounter(now time.Time, interval time.Duration) *fpsCounter {
	return &fpsCounter{interval: interval, start: now}
}

// tick records one frame that took frame. When an interval has elapsed it
// returns the average rate and the slowest frame, and starts over.
func (c *fpsCounter) tick(now time.Time, frame time.Duration) (fps float64, worst time.Duration, ok bool) {
	c.frames++
	c.worst = max(c.worst, frame)

	elapsed := now.Sub(c.start)
	if elapsed < c.interval {
		return 0, 0, false
	}
	fps = float64(c.frames) / elapsed.Seconds()
	worst = c.worst
	c.start = now
	c.frames = 0
	c.worst = 0
	return fps, worst, true
}
