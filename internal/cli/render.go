package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/layout"
	"github.com/uofr/moodle-format-topcoll/pkg/core/text"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

const (
	defaultViewWidth = 100
	summaryLength    = 60

	iconOpen   = "▾"
	iconClosed = "▸"
	iconStar   = "★"
)

// planView renders a layout plan as terminal columns.
type planView struct {
	Plan     layout.Plan
	Sections course.SectionMap
	Course   course.Course
	// Toggles holds the open sections; the zero value shows all closed.
	Toggles togglestate.State
	// Cursor is the highlighted section, 0 for none.
	Cursor int
	Width  int
}

// Render draws the general section followed by the columns side by side.
func (v planView) Render() string {
	width := v.Width
	if width <= 0 {
		width = defaultViewWidth
	}

	var b strings.Builder
	if v.Plan.General {
		general := v.Sections.Get(0)
		b.WriteString(StyleTitle.Render(course.SectionName(general, v.Plan.Settings, v.Course)))
		b.WriteString("\n")
		if general.Summary != "" {
			b.WriteString(StyleDim.Render(text.Truncate(general.Summary, summaryLength)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(v.Plan.Columns) == 0 {
		b.WriteString(StyleDim.Render("No sections to show"))
		return b.String()
	}

	colWidth := int(v.Plan.ColumnWidth * float64(width) / 100)
	rendered := make([]string, len(v.Plan.Columns))
	for i := range v.Plan.Columns {
		style := lipgloss.NewStyle().Width(colWidth).PaddingRight(v.Plan.ColumnPadding)
		rendered[i] = style.Render(v.renderColumn(i, colWidth))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}

func (v planView) renderColumn(col, width int) string {
	var lines []string
	for _, e := range v.Plan.Entries {
		if e.Column != col || !e.Rendered() {
			continue
		}
		if e.Placeholder {
			lines = append(lines, v.renderPlaceholder(e))
			continue
		}
		lines = append(lines, v.renderToggle(e.Section, width))
	}
	return strings.Join(lines, "\n")
}

func (v planView) renderToggle(n, width int) string {
	s := v.Sections.Get(n)
	colours := v.Plan.Settings.Colours

	bg := colours.Background
	if n == v.Cursor {
		bg = colours.BackgroundHover
	}
	toggle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#" + colours.Foreground)).
		Background(lipgloss.Color("#" + bg))
	if n == v.Plan.Current {
		toggle = toggle.Bold(true)
	}

	open := v.Toggles.IsOpen(n)
	icon := iconClosed
	if open {
		icon = iconOpen
	}
	title := toggleTitle(s, v.Plan.Settings, v.Course)
	if n == v.Plan.Current {
		title += " " + iconStar
	}
	line := toggle.Render(icon + " " + title)
	if !open {
		return line
	}

	var body []string
	if s.Summary != "" {
		body = append(body, "  "+text.Truncate(s.Summary, summaryLength))
	}
	if len(s.Sequence) > 0 {
		body = append(body, StyleDim.Render(fmt.Sprintf("  %d activities", len(s.Sequence))))
	}
	if !s.UserVisible {
		body = append(body, StyleWarning.Render("  hidden from students"))
	}
	if len(body) == 0 {
		return line
	}
	return line + "\n" + lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(body, "\n"))
}

func (v planView) renderPlaceholder(e layout.Entry) string {
	s := v.Sections.Get(e.Section)
	msg := course.SectionName(s, v.Plan.Settings, v.Course) + ": not available"
	if s.AvailableInfo != "" {
		msg += " (" + s.AvailableInfo + ")"
	}
	return StyleDim.Render(msg)
}

// toggleTitle decorates a section name according to the element setting.
func toggleTitle(s course.Section, settings course.Settings, c course.Course) string {
	title := course.SectionName(s, settings, c)
	element := settings.Element
	if element.ShowsSectionNumber() {
		title = fmt.Sprintf("%d %s", s.Number, title)
	}
	if element.ShowsToggleWord() {
		title += " - Toggle"
	}
	if element.ShowsStructureLabel() {
		title += fmt.Sprintf(" [%s %d]", settings.Structure.Unit(), s.Number)
	}
	return title
}
