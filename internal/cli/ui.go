package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/landscaper/pkg/enrich"
)

// statusOut receives human-readable status lines. Enriched JSON may go to
// stdout, so status goes to stderr.
var statusOut io.Writer = os.Stderr

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleValue    = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber   = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning  = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleFetched  = lipgloss.NewStyle().Foreground(colorCyan)
	styleIconOK   = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarn = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconOK.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconWarn.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(statusOut, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(statusOut, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(statusOut, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(statusOut, styleKey.Render(key)+" "+styleValue.Render(value))
}

// =============================================================================
// Enrichment Summary
// =============================================================================

// printSummary prints one line per collector plus the skipped references
// when there are only a few of them.
func printSummary(s *enrich.Summary, verbose bool) {
	fmt.Fprintln(statusOut, styleTitle.Render("Enrichment"))
	printKeyValue("items", styleNumber.Render(fmt.Sprint(s.Items)))
	for _, r := range []*enrich.Report{s.Organizations, s.Repositories} {
		if r == nil {
			continue
		}
		st := r.Stats()
		parts := []string{
			styleCached.Render(fmt.Sprintf("%d cached", st.Reused)),
			styleFetched.Render(fmt.Sprintf("%d fetched", st.Fetched)),
		}
		if st.Skipped > 0 {
			parts = append(parts, styleWarning.Render(fmt.Sprintf("%d skipped", st.Skipped)))
		}
		printKeyValue(r.Provider, strings.Join(parts, styleDim.Render(" · ")))

		if verbose {
			for _, u := range r.SkippedURLs() {
				printDetail("%s: %v", u, r.Skipped[u])
			}
		}
	}
}
