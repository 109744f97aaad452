package layout

import (
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// CurrentSection returns the section highlighted as current, or 0 for none.
//
// Week structures pick the section whose week contains now and day
// structures the section whose day contains now; the periods here start
// exactly at the course start, without the DST allowance used for gating.
// Topic structures use the instructor's marker when it names a content
// section.
func CurrentSection(s course.Settings, c course.Course) int {
	if c.NumSections <= 0 {
		return 0
	}
	structure := s.Clamp().Structure
	switch {
	case structure.IsWeekly():
		return periodContaining(c, course.Week)
	case structure == course.StructureDay:
		return periodContaining(c, course.Day)
	case c.ValidMarker():
		return c.Marker
	default:
		return 0
	}
}

func periodContaining(c course.Course, period time.Duration) int {
	if c.Now.Before(c.StartDate) {
		return 0
	}
	n := int(c.Now.Sub(c.StartDate)/period) + 1
	if n > c.NumSections {
		return 0
	}
	return n
}
