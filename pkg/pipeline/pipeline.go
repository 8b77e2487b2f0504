// Package pipeline runs the parse → render pipeline shared by the CLI and
// the HTTP server.
//
// # Stages
//
//  1. Parse: tokenize and parse GML source into a [gml.Graph]
//  2. Render: encode the graph in the requested format
//
// Rendered artifacts are cached by a hash of the source together with every
// option that changes the output. Parsing always runs, so syntax errors are
// reported even when a cached artifact exists.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Render(ctx, src, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Data)
package pipeline

import (
	"time"

	"github.com/matzehuels/gml/pkg/cache"
	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/gml"
	"github.com/matzehuels/gml/pkg/render/nodelink"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = nodelink.FormatSVG
	FormatPNG  = nodelink.FormatPNG
	FormatJPG  = nodelink.FormatJPG
)

// DefaultFormat is used when [Options.Format] is empty.
const DefaultFormat = FormatSVG

// Formats lists every supported output format.
var Formats = []string{FormatJSON, FormatText, FormatDOT, FormatSVG, FormatPNG, FormatJPG}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// Options configures one pipeline run.
type Options struct {
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	RankDir  string `json:"rankdir,omitempty"`

	// Refresh bypasses cached artifacts; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults fills in the default format and validates every
// field.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	return o.nodelink().Validate()
}

func (o Options) nodelink() nodelink.Options {
	return nodelink.Options{Detailed: o.Detailed, RankDir: o.RankDir}
}

func (o Options) artifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: o.Format, Detailed: o.Detailed, RankDir: o.RankDir}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph.
	Graph *gml.Graph

	// SourceHash is the SHA-256 of the GML source.
	SourceHash string

	// Format is the format Data is encoded in.
	Format string

	// Data is the rendered artifact.
	Data []byte

	Stats Stats

	// CacheHit reports whether Data came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	AnonCount  int
	EdgeCount  int
	ParseTime  time.Duration
	RenderTime time.Duration
}
