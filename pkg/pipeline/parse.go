package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/gml/pkg/gml"
	"github.com/matzehuels/gml/pkg/observability"
)

// Parse tokenizes and parses src, reporting to the pipeline hooks.
func (r *Runner) Parse(ctx context.Context, src []byte) (*gml.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, len(src))
	start := time.Now()

	g, err := gml.ParseString(string(src))
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnParseComplete(ctx, 0, 0, elapsed, err)
		r.Logger.Debug("parse failed", "bytes", len(src), "err", err)
		return nil, err
	}

	hooks.OnParseComplete(ctx, g.NodeCount(), g.EdgeCount(), elapsed, nil)
	r.Logger.Debug("parsed graph",
		"nodes", g.NodeCount(),
		"anonymous", g.AnonCount(),
		"edges", g.EdgeCount(),
		"duration", elapsed)
	return g, nil
}
