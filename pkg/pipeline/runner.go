package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/laneplot/pkg/cache"
	"github.com/matzehuels/laneplot/pkg/errors"
	"github.com/matzehuels/laneplot/pkg/observability"
	"github.com/matzehuels/laneplot/pkg/render/gantt/layout"
	"github.com/matzehuels/laneplot/pkg/render/gantt/sink"
	"github.com/matzehuels/laneplot/pkg/schedule"
)

// Cache key types reported to cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline on s with caching.
func (r *Runner) Execute(ctx context.Context, s schedule.Schedule, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hash, err := HashSchedule(s)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Schedule:     s,
		ScheduleHash: hash,
		Stats: Stats{
			TaskCount:         len(s),
			LaneCount:         len(s.Lanes()),
			TransmissionCount: s.TransmissionCount(),
		},
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.layout(ctx, s, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.RectCount = len(l.Rects)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"tasks", result.Stats.TaskCount,
		"rects", result.Stats.RectCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, s, hash, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of s with caching and reports
// whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s schedule.Schedule, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return layout.Layout{}, false, err
	}
	hash, err := HashSchedule(s)
	if err != nil {
		return layout.Layout{}, false, err
	}
	return r.layout(ctx, s, hash, opts)
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, s schedule.Schedule, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, s, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, s schedule.Schedule, hash string, opts Options) (layout.Layout, bool, error) {
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := sink.ReadLayoutJSON(data); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(s), len(s.Lanes()))
	start := time.Now()
	l, err := BuildLayout(s, opts)
	hooks.OnLayoutComplete(ctx, len(l.Rects), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := sink.RenderJSON(l); err == nil {
		r.set(ctx, cacheKey, keyTypeLayout, data, cache.LayoutTTL)
	}
	return l, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s schedule.Schedule, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hash, err := HashSchedule(s)
	if err != nil {
		return nil, false, err
	}
	return r.render(ctx, s, hash, l, opts)
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s schedule.Schedule, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, l, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, s schedule.Schedule, scheduleHash string, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	layoutData, err := sink.RenderJSON(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	// dot and flow artifacts depend on the schedule, not just the layout.
	base := cache.Hash([]byte(scheduleHash + cache.Hash(layoutData)))

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(base, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, s, l, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(base, opts.ArtifactKeyOpts(format)), keyTypeArtifact, data, cache.ArtifactTTL)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// set stores data and logs, rather than returns, cache write failures.
func (r *Runner) set(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
