package nodelink

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/gml"
)

// Rank directions accepted by [Options.RankDir].
var RankDirs = []string{"TB", "BT", "LR", "RL"}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed appends every non-structural attribute to node and edge
	// labels. When false, nodes show their label (or id) and edges their
	// label only.
	Detailed bool
	// RankDir is the Graphviz layout direction. Empty means "TB".
	RankDir string
}

// Validate checks the rank direction.
func (o Options) Validate() error {
	if o.RankDir == "" {
		return nil
	}
	return errors.ValidateFormat(o.RankDir, RankDirs...)
}

// ToDOT converts a parsed graph to Graphviz DOT source.
//
// Nodes are emitted in creation order and edges in input order. Anonymous
// nodes are drawn dashed on grey. A graph whose `directed` attribute is the
// integer 0 becomes an undirected DOT graph; anything else is a digraph.
func ToDOT(g *gml.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	kind, arrow := "digraph", "->"
	if d, ok := g.Attrs().Int("directed"); ok && d == 0 {
		kind, arrow = "graph", "--"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if title, ok := g.Attrs().Str(gml.AttrLabel); ok {
		fmt.Fprintf(&buf, "  label=%s;\n  labelloc=t;\n", quote(title))
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{"label=" + quote(nodeLabel(n, opts.Detailed))}
		if n.IsAnon() {
			attrs = append(attrs, `style="rounded,filled,dashed"`, "fillcolor=lightgrey", "fontcolor=black")
		}
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		label := edgeLabel(e, opts.Detailed)
		if label == "" {
			fmt.Fprintf(&buf, "  \"%d\" %s \"%d\";\n", e.Source(), arrow, e.Target())
			continue
		}
		fmt.Fprintf(&buf, "  \"%d\" %s \"%d\" [label=%s];\n", e.Source(), arrow, e.Target(), quote(label))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n *gml.Node, detailed bool) string {
	head := n.Label()
	if head == "" {
		head = fmt.Sprint(n.ID())
	}
	if !detailed {
		return head
	}
	return joinLines(head, attrLines(n.Attrs(), gml.AttrID, gml.AttrLabel))
}

func edgeLabel(e *gml.Edge, detailed bool) string {
	head := e.Label()
	if !detailed {
		return head
	}
	return joinLines(head, attrLines(e.Attrs(), gml.AttrSource, gml.AttrTarget, gml.AttrLabel))
}

// attrLines formats attributes as sorted "key: value" lines.
func attrLines(attrs gml.Attrs, skip ...string) []string {
	var lines []string
	for _, k := range attrs.Keys() {
		if slices.Contains(skip, k) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", k, attrs[k]))
	}
	return lines
}

func joinLines(head string, lines []string) string {
	if head != "" {
		lines = append([]string{head}, lines...)
	}
	return strings.Join(lines, "\n")
}

// quote renders s as a DOT string literal. Backslashes are escaped so label
// text never triggers Graphviz escape sequences; newlines become "\n".
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
