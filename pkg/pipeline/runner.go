package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gml/pkg/cache"
	"github.com/matzehuels/gml/pkg/observability"
)

const keyTypeArtifact = "artifact"

// Runner executes the pipeline with caching. It holds no per-run state and
// may be shared by concurrent callers.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is how long rendered artifacts stay cached.
	TTL time.Duration
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
		TTL:    cache.TTLArtifact,
	}
}

// Render parses src and encodes the graph in opts.Format, consulting the
// cache for the encoded artifact. Cache failures are logged and otherwise
// ignored.
func (r *Runner) Render(ctx context.Context, src []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res := &Result{
		SourceHash: cache.Hash(src),
		Format:     opts.Format,
	}

	// Stage 1: Parse
	parseStart := time.Now()
	g, err := r.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	res.Graph = g
	res.Stats.ParseTime = time.Since(parseStart)
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.AnonCount = g.AnonCount()
	res.Stats.EdgeCount = g.EdgeCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	key := r.Keyer.ArtifactKey(res.SourceHash, opts.artifactKeyOpts())
	if !opts.Refresh {
		if data, ok := r.lookup(ctx, key); ok {
			res.Data = data
			res.CacheHit = true
			r.Logger.Debug("artifact from cache", "format", opts.Format, "bytes", len(data))
			return res, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	renderStart := time.Now()
	data, err := Encode(ctx, g, opts)
	res.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Format, len(data), res.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	res.Data = data

	r.store(ctx, key, data)
	r.Logger.Debug("rendered artifact",
		"format", opts.Format,
		"bytes", len(data),
		"duration", res.Stats.RenderTime)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
