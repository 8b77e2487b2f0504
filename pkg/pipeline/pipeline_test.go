package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gml/pkg/cache"
	gmlerrors "github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/observability"
)

const src = `graph [
	node [ id 1 label "a" ]
	edge [ source 1 target 2 label "x" ]
]`

// memCache is an in-memory cache.Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
	err  error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"jpg", false},
		{"json", false},
		{"dot", false},
		{"text", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() = %v", err)
	}
	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}

	bad := Options{Format: "dot", RankDir: "sideways"}
	if err := bad.ValidateAndSetDefaults(); !gmlerrors.Is(err, gmlerrors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateAndSetDefaults(rankdir=sideways) = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerRenderFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	tests := []struct {
		format string
		check  func(t *testing.T, data []byte)
	}{
		{FormatJSON, func(t *testing.T, data []byte) {
			var v map[string]any
			if err := json.Unmarshal(data, &v); err != nil {
				t.Errorf("json output invalid: %v", err)
			}
		}},
		{FormatText, func(t *testing.T, data []byte) {
			if !strings.HasPrefix(string(data), "graph [\n") {
				t.Errorf("text output = %q", data)
			}
		}},
		{FormatDOT, func(t *testing.T, data []byte) {
			if !strings.Contains(string(data), `"1" -> "2" [label="x"];`) {
				t.Errorf("dot output missing edge:\n%s", data)
			}
		}},
		{FormatSVG, func(t *testing.T, data []byte) {
			if !strings.Contains(string(data), "<svg") {
				t.Errorf("svg output = %.60s", data)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res, err := r.Render(ctx, []byte(src), Options{Format: tt.format})
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if res.Format != tt.format {
				t.Errorf("Format = %q, want %q", res.Format, tt.format)
			}
			if res.Stats.NodeCount != 2 || res.Stats.AnonCount != 1 || res.Stats.EdgeCount != 1 {
				t.Errorf("Stats = %+v", res.Stats)
			}
			tt.check(t, res.Data)
		})
	}
}

func TestRunnerRenderCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Format: FormatDOT}

	first, err := r.Render(ctx, []byte(src), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first render should miss the cache")
	}

	second, err := r.Render(ctx, []byte(src), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second render should hit the cache")
	}
	if string(second.Data) != string(first.Data) {
		t.Error("cached artifact differs from rendered one")
	}

	detailed, _ := r.Render(ctx, []byte(src), Options{Format: FormatDOT, Detailed: true})
	if detailed.CacheHit {
		t.Error("different options should not share a cache entry")
	}

	refreshed, _ := r.Render(ctx, []byte(src), Options{Format: FormatDOT, Refresh: true})
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3", c.sets)
	}
}

func TestRunnerRenderCacheFailureIsIgnored(t *testing.T) {
	c := newMemCache()
	c.err = errors.New("disk full")
	r := NewRunner(c, nil, quietLogger())

	res, err := r.Render(context.Background(), []byte(src), Options{Format: FormatText})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if res.CacheHit || len(res.Data) == 0 {
		t.Errorf("Render() = hit %v, %d bytes", res.CacheHit, len(res.Data))
	}
}

func TestRunnerRenderParseError(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())

	_, err := r.Render(context.Background(), []byte("graph [ node [ ] ]"), Options{Format: FormatJSON})
	if !gmlerrors.Is(err, gmlerrors.ErrCodeStructural) {
		t.Fatalf("Render() error = %v, want STRUCTURAL_ERROR", err)
	}
	if pos, _ := gmlerrors.Position(err); pos != 4 {
		t.Errorf("Position() = %d, want 4", pos)
	}
	if c.gets != 0 || c.sets != 0 {
		t.Errorf("cache touched on parse failure: gets=%d sets=%d", c.gets, c.sets)
	}
}

func TestRunnerRenderInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Render(context.Background(), []byte(src), Options{Format: "gif"})
	if !gmlerrors.Is(err, gmlerrors.ErrCodeInvalidFormat) {
		t.Errorf("Render() error = %v, want INVALID_FORMAT", err)
	}
}

func TestRunnerRenderCancelled(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, []byte(src), Options{Format: FormatText})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	parsed   []int
	rendered []string
}

func (h *recordingHooks) OnParseComplete(_ context.Context, nodes, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.parsed = append(h.parsed, nodes)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rendered = append(h.rendered, format)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Render(context.Background(), []byte(src), Options{Format: FormatDOT}); err != nil {
		t.Fatal(err)
	}

	if len(hooks.parsed) != 1 || hooks.parsed[0] != 2 {
		t.Errorf("parse hook calls = %v, want [2]", hooks.parsed)
	}
	if len(hooks.rendered) != 1 || hooks.rendered[0] != FormatDOT {
		t.Errorf("render hook calls = %v, want [dot]", hooks.rendered)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, ok := r.Cache.(*cache.NullCache); !ok {
		t.Errorf("Cache = %T, want *cache.NullCache", r.Cache)
	}
	if r.Keyer == nil || r.Logger == nil {
		t.Error("NewRunner should default keyer and logger")
	}
	if r.TTL != cache.TTLArtifact {
		t.Errorf("TTL = %v, want %v", r.TTL, cache.TTLArtifact)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
