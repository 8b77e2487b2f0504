package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/gml/pkg/gml"
)

type graph struct {
	Attrs gml.Attrs `json:"attrs"`
	Nodes []node    `json:"nodes"`
	Edges []edge    `json:"edges"`
}

type node struct {
	ID    int       `json:"id"`
	Anon  bool      `json:"anon"`
	Attrs gml.Attrs `json:"attrs"`
}

type edge struct {
	Source int       `json:"source"`
	Target int       `json:"target"`
	Attrs  gml.Attrs `json:"attrs"`
}

// WriteJSON encodes a graph as indented JSON and writes it to w.
//
// Nodes appear in creation order and edges in input order. Structural
// attributes (id, source, target) are hoisted into their own fields and left
// out of "attrs". Integer attributes stay JSON numbers and string attributes
// JSON strings.
func WriteJSON(g *gml.Graph, w io.Writer) error {
	nodes, edges := g.Nodes(), g.Edges()
	out := graph{
		Attrs: g.Attrs(),
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}

	for i, n := range nodes {
		out.Nodes[i] = node{
			ID:    n.ID(),
			Anon:  n.IsAnon(),
			Attrs: without(n.Attrs(), gml.AttrID),
		}
	}
	for i, e := range edges {
		out.Edges[i] = edge{
			Source: e.Source(),
			Target: e.Target(),
			Attrs:  without(e.Attrs(), gml.AttrSource, gml.AttrTarget),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *gml.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// without returns attrs minus keys. attrs is already a copy.
func without(attrs gml.Attrs, keys ...string) gml.Attrs {
	for _, k := range keys {
		delete(attrs, k)
	}
	if attrs == nil {
		return gml.Attrs{}
	}
	return attrs
}
