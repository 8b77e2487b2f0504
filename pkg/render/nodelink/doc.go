// Package nodelink draws parsed GML graphs as node-link diagrams with
// Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{RankDir: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] dispatches on a format name ("svg", "png" or "jpg") for callers
// that take the format from user input.
//
// # Appearance
//
// Nodes are rounded boxes labelled with their `label` attribute, or their id
// when they have none. Nodes that were only referenced by edges are dashed
// and grey. Edge `label` attributes become edge labels. With
// [Options.Detailed] every other attribute is listed below the label.
//
// A graph-level `label` becomes the diagram title, and `directed 0` yields an
// undirected drawing.
//
// # Dependencies
//
// Rendering runs in-process through [github.com/goccy/go-graphviz]; no
// Graphviz installation is needed.
package nodelink
