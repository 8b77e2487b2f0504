package gml

import (
	"fmt"
	"slices"
	"strings"
)

// String renders the node as an indented GML-like block for debugging.
// The id comes first, then the anon flag, then the remaining attributes in
// sorted order. The output is not guaranteed to parse back identically.
func (n *Node) String() string {
	var b strings.Builder
	writeNode(&b, n, "")
	return b.String()
}

// String renders the edge as an indented GML-like block for debugging.
func (e *Edge) String() string {
	var b strings.Builder
	writeEdge(&b, e, "")
	return b.String()
}

// String renders the whole graph for debugging: graph attributes, then
// nodes in creation order, then edges in input order.
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("graph [\n")
	writeAttrs(&b, g.attrs, "  ")
	for i := range g.nodes {
		writeNode(&b, &g.nodes[i], "  ")
	}
	for i := range g.edges {
		writeEdge(&b, &g.edges[i], "  ")
	}
	b.WriteString("]\n")
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, indent string) {
	fmt.Fprintf(b, "%snode [\n", indent)
	fmt.Fprintf(b, "%s  %s %d\n", indent, AttrID, n.id)
	fmt.Fprintf(b, "%s  anon %t\n", indent, n.anon)
	writeAttrs(b, n.attrs, indent+"  ", AttrID)
	fmt.Fprintf(b, "%s]\n", indent)
}

func writeEdge(b *strings.Builder, e *Edge, indent string) {
	fmt.Fprintf(b, "%sedge [\n", indent)
	fmt.Fprintf(b, "%s  %s %d\n", indent, AttrSource, e.source)
	fmt.Fprintf(b, "%s  %s %d\n", indent, AttrTarget, e.target)
	writeAttrs(b, e.attrs, indent+"  ", AttrSource, AttrTarget)
	fmt.Fprintf(b, "%s]\n", indent)
}

func writeAttrs(b *strings.Builder, attrs Attrs, indent string, skip ...string) {
	for _, k := range attrs.Keys() {
		if slices.Contains(skip, k) {
			continue
		}
		fmt.Fprintf(b, "%s%s %s\n", indent, k, attrs[k])
	}
}
