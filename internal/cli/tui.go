package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gml/pkg/gml"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	detailBoxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1).
			MarginLeft(1)
)

// =============================================================================
// InspectModel - Interactive node browser
// =============================================================================

// InspectModel is the bubbletea model behind `gml inspect`. The left pane
// lists nodes in creation order; the right pane shows the selected node's
// attributes and edges.
type InspectModel struct {
	Graph  *gml.Graph
	Title  string
	Nodes  []*gml.Node
	Cursor int
	Offset int
	Height int
}

// NewInspectModel creates a browser over g.
func NewInspectModel(g *gml.Graph, title string) InspectModel {
	return InspectModel{
		Graph:  g,
		Title:  title,
		Nodes:  g.Nodes(),
		Height: 15,
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Nodes))
		case "end", "G":
			m.move(len(m.Nodes))
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the node list, and scrolls the
// window to keep it visible.
func (m *InspectModel) move(delta int) {
	if len(m.Nodes) == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Nodes)-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// Selected returns the node under the cursor, or nil for an empty graph.
func (m InspectModel) Selected() *gml.Node {
	if len(m.Nodes) == 0 {
		return nil
	}
	return m.Nodes[m.Cursor]
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%s · %s · %d anonymous",
		plural(m.Graph.NodeCount(), "node"), plural(m.Graph.EdgeCount(), "edge"), m.Graph.AnonCount())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	if len(m.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (graph has no nodes)"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.nodeTable(), detailBoxStyle.Render(m.details())))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Nodes))))
	return b.String()
}

func (m InspectModel) nodeTable() string {
	end := min(m.Offset+m.Height, len(m.Nodes))

	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		label := n.Label()
		if label == "" {
			label = "—"
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(n.ID()),
			label,
			strconv.Itoa(n.InDegree()),
			strconv.Itoa(n.OutDegree()),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "In", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			style := lipgloss.NewStyle().Foreground(colorWhite)
			if m.Nodes[idx].IsAnon() {
				style = style.Foreground(colorDim).Italic(true)
			}
			if idx == m.Cursor {
				style = style.Foreground(colorCyan).Bold(true)
			}
			return style
		}).
		Render()
}

func (m InspectModel) details() string {
	n := m.Selected()
	var b strings.Builder

	heading := fmt.Sprintf("node %d", n.ID())
	if n.IsAnon() {
		heading += " " + styleAnon.Render("(anonymous)")
	}
	b.WriteString(StyleTitle.Render(heading))
	b.WriteString("\n\n")

	attrs := n.Attrs()
	for _, k := range attrs.Keys() {
		b.WriteString(detailKeyStyle.Render(k))
		b.WriteString(" ")
		b.WriteString(StyleValue.Render(attrs[k].String()))
		b.WriteString("\n")
	}

	writeEdges(&b, "out", n.ForwardEdges(), func(e *gml.Edge) int { return e.Target() })
	writeEdges(&b, "in", n.BackwardEdges(), func(e *gml.Edge) int { return e.Source() })
	return strings.TrimRight(b.String(), "\n")
}

func writeEdges(b *strings.Builder, dir string, edges []*gml.Edge, other func(*gml.Edge) int) {
	b.WriteString("\n")
	b.WriteString(listHeaderStyle.Render(fmt.Sprintf("%s (%d)", dir, len(edges))))
	b.WriteString("\n")

	arrow := iconArrow
	if dir == "in" {
		arrow = "←"
	}
	for _, e := range edges {
		line := fmt.Sprintf("%s %d", arrow, other(e))
		if label := e.Label(); label != "" {
			line += " " + listDimStyle.Render(strconv.Quote(label))
		}
		b.WriteString("  " + line + "\n")
	}
}
