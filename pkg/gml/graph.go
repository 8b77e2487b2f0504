package gml

import (
	"maps"
)

// Attribute names carrying structural meaning.
const (
	AttrID     = "id"
	AttrSource = "source"
	AttrTarget = "target"
	AttrLabel  = "label"
)

// NodeIndex is a stable handle to a node inside its Graph's node arena.
type NodeIndex int

// EdgeIndex is a stable handle to an edge inside its Graph's edge arena.
type EdgeIndex int

// Node is one vertex of a parsed graph: either a `node [...]` block or an
// endpoint referenced by an edge without its own declaration.
//
// Nodes are owned by their Graph. The zero value is not usable.
type Node struct {
	g        *Graph
	id       int
	anon     bool
	attrs    Attrs
	forward  []EdgeIndex // edges where this node is the source
	backward []EdgeIndex // edges where this node is the target
}

// ID returns the node's unique integer id.
func (n *Node) ID() int { return n.id }

// IsAnon reports whether the node was synthesized because an edge
// referenced its id without a matching `node [...]` block.
func (n *Node) IsAnon() bool { return n.anon }

// Attr returns the attribute stored under key.
func (n *Node) Attr(key string) (Value, bool) { return n.attrs.Get(key) }

// Attrs returns a copy of the node's attributes, including id.
func (n *Node) Attrs() Attrs { return maps.Clone(n.attrs) }

// Label returns the string label attribute, or "" when absent.
func (n *Node) Label() string {
	s, _ := n.attrs.Str(AttrLabel)
	return s
}

// Forward returns handles of edges leaving this node, in input order.
func (n *Node) Forward() []EdgeIndex { return n.forward }

// Backward returns handles of edges entering this node, in input order.
func (n *Node) Backward() []EdgeIndex { return n.backward }

// ForwardEdges returns the edges whose source is this node, in input order.
// A self-loop appears both here and in [Node.BackwardEdges].
func (n *Node) ForwardEdges() []*Edge { return n.g.resolveEdges(n.forward) }

// BackwardEdges returns the edges whose target is this node, in input order.
func (n *Node) BackwardEdges() []*Edge { return n.g.resolveEdges(n.backward) }

// Successors returns the target node of every forward edge, in edge order.
// Parallel edges yield repeated entries.
func (n *Node) Successors() []*Node {
	out := make([]*Node, len(n.forward))
	for i, ei := range n.forward {
		out[i] = n.g.EdgeAt(ei).TargetNode()
	}
	return out
}

// Predecessors returns the source node of every backward edge, in edge order.
func (n *Node) Predecessors() []*Node {
	out := make([]*Node, len(n.backward))
	for i, ei := range n.backward {
		out[i] = n.g.EdgeAt(ei).SourceNode()
	}
	return out
}

// OutDegree returns the number of edges leaving the node.
func (n *Node) OutDegree() int { return len(n.forward) }

// InDegree returns the number of edges entering the node.
func (n *Node) InDegree() int { return len(n.backward) }

// Edge is one `edge [...]` block. Its endpoints are resolved to nodes of
// the same Graph once the block has been parsed.
type Edge struct {
	g      *Graph
	source int
	target int
	src    NodeIndex
	dst    NodeIndex
	attrs  Attrs
}

// Source returns the id of the source node.
func (e *Edge) Source() int { return e.source }

// Target returns the id of the target node.
func (e *Edge) Target() int { return e.target }

// SourceIndex returns the arena handle of the source node.
func (e *Edge) SourceIndex() NodeIndex { return e.src }

// TargetIndex returns the arena handle of the target node.
func (e *Edge) TargetIndex() NodeIndex { return e.dst }

// SourceNode returns the resolved source node.
func (e *Edge) SourceNode() *Node { return e.g.NodeAt(e.src) }

// TargetNode returns the resolved target node.
func (e *Edge) TargetNode() *Node { return e.g.NodeAt(e.dst) }

// IsSelfLoop reports whether the edge starts and ends at the same node.
func (e *Edge) IsSelfLoop() bool { return e.source == e.target }

// Attr returns the attribute stored under key.
func (e *Edge) Attr(key string) (Value, bool) { return e.attrs.Get(key) }

// Attrs returns a copy of the edge's attributes, including source and target.
func (e *Edge) Attrs() Attrs { return maps.Clone(e.attrs) }

// Label returns the string label attribute, or "" when absent.
func (e *Edge) Label() string {
	s, _ := e.attrs.Str(AttrLabel)
	return s
}

// Graph is the result of parsing one `graph [...]` block.
//
// Nodes and edges live in arenas owned by the Graph and reference each other
// by index, so pointers returned by accessors stay valid for the Graph's
// lifetime. A Graph is never modified after [Parse] returns it and is safe
// for concurrent readers.
type Graph struct {
	attrs Attrs
	nodes []Node
	edges []Edge
	byID  map[int]NodeIndex
}

func newGraph() *Graph {
	return &Graph{
		attrs: Attrs{},
		byID:  make(map[int]NodeIndex),
	}
}

// Attr returns the graph-level attribute stored under key.
func (g *Graph) Attr(key string) (Value, bool) { return g.attrs.Get(key) }

// Attrs returns a copy of the graph-level attributes.
func (g *Graph) Attrs() Attrs { return maps.Clone(g.attrs) }

// NodeCount returns the number of nodes, anonymous ones included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// AnonCount returns the number of nodes synthesized for undeclared edge
// endpoints.
func (g *Graph) AnonCount() int {
	count := 0
	for i := range g.nodes {
		if g.nodes[i].anon {
			count++
		}
	}
	return count
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (*Node, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.nodes[idx], true
}

// NodeAt resolves a node handle. It panics if idx is out of range.
func (g *Graph) NodeAt(idx NodeIndex) *Node { return &g.nodes[idx] }

// EdgeAt resolves an edge handle. It panics if idx is out of range.
func (g *Graph) EdgeAt(idx EdgeIndex) *Edge { return &g.edges[idx] }

// Nodes returns all nodes in the order they were created: declared nodes
// in declaration order, interleaved with anonymous nodes at the point the
// first edge referenced them.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = &g.nodes[i]
	}
	return out
}

// Edges returns all edges in input order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	for i := range g.edges {
		out[i] = &g.edges[i]
	}
	return out
}

func (g *Graph) resolveEdges(idx []EdgeIndex) []*Edge {
	out := make([]*Edge, len(idx))
	for i, ei := range idx {
		out[i] = &g.edges[ei]
	}
	return out
}

// declareNode records a `node [...]` block. It reports false when a node
// with that id already exists, including an anonymous one created by an
// earlier edge.
func (g *Graph) declareNode(id int, attrs Attrs) bool {
	if _, ok := g.byID[id]; ok {
		return false
	}
	g.insertNode(id, false, attrs)
	return true
}

// insertNode appends a node to the arena. The caller checks uniqueness.
func (g *Graph) insertNode(id int, anon bool, attrs Attrs) NodeIndex {
	idx := NodeIndex(len(g.nodes))
	g.nodes = append(g.nodes, Node{g: g, id: id, anon: anon, attrs: attrs})
	g.byID[id] = idx
	return idx
}

// ensureNode returns the handle for id, synthesizing an anonymous node
// carrying only its id when none exists yet.
func (g *Graph) ensureNode(id int) NodeIndex {
	if idx, ok := g.byID[id]; ok {
		return idx
	}
	return g.insertNode(id, true, Attrs{AttrID: IntValue(id)})
}

// link appends an edge between two ids, materializing missing endpoints,
// and indexes it on both endpoint nodes.
func (g *Graph) link(source, target int, attrs Attrs) EdgeIndex {
	src := g.ensureNode(source)
	dst := g.ensureNode(target)

	idx := EdgeIndex(len(g.edges))
	g.edges = append(g.edges, Edge{
		g:      g,
		source: source,
		target: target,
		src:    src,
		dst:    dst,
		attrs:  attrs,
	})
	g.nodes[src].forward = append(g.nodes[src].forward, idx)
	g.nodes[dst].backward = append(g.nodes[dst].backward, idx)
	return idx
}
