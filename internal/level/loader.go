package level

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/thirdlf03/zawa/internal/collision"
	"github.com/thirdlf03/zawa/internal/logger"
)

// Result is the outcome of loading one asset.
type Result struct {
	Index    int // position of Asset in the slice passed to Start
	Asset    Asset
	Meshes   []collision.MeshSource
	Err      error
	Duration time.Duration
}

// LoadFunc loads one asset. LoadFile is the default.
type LoadFunc func(Asset) ([]collision.MeshSource, error)

// Loader reads level assets in background goroutines.
type Loader struct {
	load    LoadFunc
	workers int
	log     *zap.Logger
}

// NewLoader creates a loader running at most workers loads at once.
func NewLoader(workers int) *Loader {
	if workers <= 0 {
		workers = 4
	}
	return &Loader{
		load:    LoadFile,
		workers: workers,
		log:     logger.Named("level"),
	}
}

// WithLoadFunc replaces the per-asset load function.
func (l *Loader) WithLoadFunc(fn LoadFunc) *Loader {
	l.load = fn
	return l
}

// Start loads assets concurrently. Each asset produces exactly one Result,
// in completion order; the channel is closed after the last one. Assets not
// started when ctx is cancelled report ctx.Err().
func (l *Loader) Start(ctx context.Context, assets []Asset) <-chan Result {
	results := make(chan Result, len(assets))
	sem := make(chan struct{}, l.workers)

	var wg sync.WaitGroup
	for i, a := range assets {
		wg.Add(1)
		go func(i int, a Asset) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results <- Result{Index: i, Asset: a, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			start := time.Now()
			meshes, err := l.load(a)
			r := Result{Index: i, Asset: a, Meshes: meshes, Err: err, Duration: time.Since(start)}
			if err != nil {
				l.log.Warn("asset failed", zap.String("asset", a.Name), zap.Error(err))
			} else {
				l.log.Debug("asset loaded",
					zap.String("asset", a.Name),
					zap.Int("meshes", len(meshes)),
					zap.Duration("took", r.Duration))
			}
			results <- r
		}(i, a)
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

// LoadAll loads assets and waits for all of them. Meshes of successful
// assets are returned in asset order along with every failure combined.
func (l *Loader) LoadAll(ctx context.Context, assets []Asset) ([]collision.MeshSource, error) {
	loaded := make([][]collision.MeshSource, len(assets))

	var errs error
	for r := range l.Start(ctx, assets) {
		if r.Err != nil {
			errs = multierr.Append(errs, r.Err)
			continue
		}
		loaded[r.Index] = r.Meshes
	}

	var out []collision.MeshSource
	for _, meshes := range loaded {
		out = append(out, meshes...)
	}
	return out, errs
}
