package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gml/pkg/gml"
)

func inspectGraph(t *testing.T) *gml.Graph {
	t.Helper()
	g, err := gml.ParseString(sampleGML)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func press(m InspectModel, key string) InspectModel {
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(InspectModel)
}

func TestInspectModelNavigation(t *testing.T) {
	m := NewInspectModel(inspectGraph(t), "sample")

	tests := []struct {
		key  string
		want int
	}{
		{"down", 1},
		{"j", 2},
		{"down", 2},
		{"up", 1},
		{"g", 0},
		{"k", 0},
		{"G", 2},
	}

	for _, tt := range tests {
		m = press(m, tt.key)
		if m.Cursor != tt.want {
			t.Errorf("after %q: Cursor = %d, want %d", tt.key, m.Cursor, tt.want)
		}
	}
	if got := m.Selected().ID(); got != 3 {
		t.Errorf("Selected().ID() = %d, want 3", got)
	}
}

func TestInspectModelScroll(t *testing.T) {
	m := NewInspectModel(inspectGraph(t), "sample")
	m.Height = 2

	m = press(m, "G")
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
	m = press(m, "g")
	if m.Offset != 0 {
		t.Errorf("Offset = %d, want 0", m.Offset)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	if h := next.(InspectModel).Height; h != 5 {
		t.Errorf("Height = %d, want minimum 5", h)
	}
}

func TestInspectModelQuit(t *testing.T) {
	m := NewInspectModel(inspectGraph(t), "sample")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestInspectModelView(t *testing.T) {
	m := NewInspectModel(inspectGraph(t), "sample")

	view := m.View()
	for _, want := range []string{"sample", "3 nodes", "2 edges", "1 anonymous", "app", "[1/3]", "out (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m = press(m, "G")
	view = m.View()
	for _, want := range []string{"node 3", "(anonymous)", "in (1)", `"uses"`} {
		if !strings.Contains(view, want) {
			t.Errorf("View() of anonymous node missing %q", want)
		}
	}
}

func TestInspectModelEmptyGraph(t *testing.T) {
	g, err := gml.ParseString("graph [ ]")
	if err != nil {
		t.Fatal(err)
	}
	m := NewInspectModel(g, "empty")
	m = press(m, "down")
	if m.Selected() != nil {
		t.Error("Selected() on empty graph should be nil")
	}
	if !strings.Contains(m.View(), "no nodes") {
		t.Error("View() should note the empty graph")
	}
}
