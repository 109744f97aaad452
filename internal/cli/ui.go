package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/navigation"
	"github.com/uofr/moodle-format-topcoll/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
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

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
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

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
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

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Plan Display
// =============================================================================

// printPlanStats prints layout statistics on a single line.
func printPlanStats(r *pipeline.Result) {
	parts := []string{
		fmt.Sprintf("%d sections", r.Stats.Sections),
		fmt.Sprintf("%d shown", r.Stats.Shown),
		fmt.Sprintf("%d columns", r.Stats.Columns),
	}

	status, statusStyle := iconFresh, styleComputed
	if r.CacheInfo.PlanHit {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Println(line)
}

// printSelector prints the navigation block of a single-section page.
func printSelector(sel navigation.Selector) {
	prev, next := "-", "-"
	if sel.Previous != nil {
		prev = fmt.Sprintf("◄ %s (%d)", sel.Previous.Label, sel.Previous.Section)
	}
	if sel.Next != nil {
		next = fmt.Sprintf("%s (%d) ►", sel.Next.Label, sel.Next.Section)
	}
	printKeyValue("section", StyleNumber.Render(fmt.Sprint(sel.Current)))
	printKeyValue("previous", prev)
	printKeyValue("next", next)

	items := make([]string, 0, len(sel.Menu))
	for _, m := range sel.Menu {
		items = append(items, m.Label)
	}
	printKeyValue("jump to", strings.Join(items, ", "))
}

// printSettings prints a course's layout settings.
func printSettings(courseID string, s course.Settings, stored bool) {
	source := "defaults"
	if stored {
		source = "stored"
	}
	fmt.Println(StyleTitle.Render(courseID) + " " + StyleDim.Render("("+source+")"))
	printKeyValue("structure", s.Structure.String())
	printKeyValue("columns", StyleNumber.Render(fmt.Sprint(s.Columns)))
	printKeyValue("element", StyleNumber.Render(fmt.Sprint(int(s.Element))))
	printKeyValue("foreground", colourSwatch(s.Colours.Foreground))
	printKeyValue("background", colourSwatch(s.Colours.Background))
	printKeyValue("hover", colourSwatch(s.Colours.BackgroundHover))
}

func colourSwatch(hex string) string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color("#" + hex)).Render("  ")
	return swatch + " #" + hex
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
