package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gml/pkg/errors"
	"github.com/matzehuels/gml/pkg/gml"
	"github.com/matzehuels/gml/pkg/pipeline"
)

// statusOut receives status lines. Converted graphs may go to stdout, so
// status output never does.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for offending input.
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleAnon     = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Graph Summary
// =============================================================================

// printSummary prints graph statistics on a single line.
func printSummary(s pipeline.Stats, cached bool) {
	fmt.Fprintln(statusOut, summaryLine(s, cached))
}

func summaryLine(s pipeline.Stats, cached bool) string {
	parts := []string{
		StyleNumber.Render(plural(s.NodeCount, "node")),
		StyleNumber.Render(plural(s.EdgeCount, "edge")),
	}
	if s.AnonCount > 0 {
		parts = append(parts, styleAnon.Render(fmt.Sprintf("%d anonymous", s.AnonCount)))
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// =============================================================================
// Parse Errors
// =============================================================================

// tokenContext is how many tokens are shown on each side of an error.
const tokenContext = 4

// printParseError shows the tokens around a positioned error.
// Errors without a position print nothing; the caller reports them.
func printParseError(src []byte, err error) {
	if line := errorContext(src, err); line != "" {
		printDetail("near token %d:", mustPos(err))
		fmt.Fprintln(statusOut, "    "+line)
	}
}

// errorContext renders the tokens around err's position with the offending
// token highlighted. Past the end of input, a marker stands in for it.
func errorContext(src []byte, err error) string {
	pos, ok := errors.Position(err)
	if !ok {
		return ""
	}
	toks := gml.Tokenize(string(src))
	if len(toks) == 0 {
		return ""
	}

	lo := max(0, pos-tokenContext)
	hi := min(len(toks), pos+tokenContext+1)

	var parts []string
	if lo > 0 {
		parts = append(parts, StyleDim.Render("…"))
	}
	for i := lo; i < hi; i++ {
		if i == pos {
			parts = append(parts, StyleError.Render(toks[i]))
			continue
		}
		parts = append(parts, StyleDim.Render(toks[i]))
	}
	if pos >= len(toks) {
		parts = append(parts, StyleError.Render("<end of input>"))
	} else if hi < len(toks) {
		parts = append(parts, StyleDim.Render("…"))
	}
	return strings.Join(parts, " ")
}

func mustPos(err error) int {
	pos, _ := errors.Position(err)
	return pos
}
