package course

import (
	"fmt"
	"time"
)

// GeneralSectionName is the default name of section 0.
const GeneralSectionName = "General"

// SectionName returns the display name of section s. An explicit name always
// wins; otherwise the name is derived from the structure: "Topic 3",
// a week's date range ("2 January - 8 January") or a day ("Monday 2 January").
func SectionName(s Section, settings Settings, c Course) string {
	if s.Name != "" {
		return s.Name
	}
	if s.Number == 0 {
		return GeneralSectionName
	}
	structure := settings.Structure
	if !structure.Valid() {
		structure = DefaultStructure
	}
	switch {
	case structure.IsWeekly():
		start := c.StartDate.Add(time.Duration(s.Number-1) * Week)
		end := start.Add(Week - Day)
		return fmt.Sprintf("%s - %s", start.Format("2 January"), end.Format("2 January"))
	case structure == StructureDay:
		day := c.StartDate.Add(time.Duration(s.Number-1) * Day)
		return day.Format("Monday 2 January")
	default:
		return fmt.Sprintf("%s %d", structure.Unit(), s.Number)
	}
}
