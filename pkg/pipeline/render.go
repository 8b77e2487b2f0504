package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/gml/pkg/gml"
	pkgio "github.com/matzehuels/gml/pkg/io"
	"github.com/matzehuels/gml/pkg/render/nodelink"
)

// Encode renders g in opts.Format without touching any cache.
// opts must already be validated.
func Encode(ctx context.Context, g *gml.Graph, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatText:
		return []byte(g.String()), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(g, opts.nodelink())), nil
	case FormatSVG, FormatPNG, FormatJPG:
		return nodelink.Render(ctx, nodelink.ToDOT(g, opts.nodelink()), opts.Format)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
