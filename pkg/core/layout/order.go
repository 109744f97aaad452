package layout

import (
	"fmt"
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// Pass identifies the traversal pass a visit belongs to.
type Pass int

const (
	// PassSingle is the only pass of the non current-first structures.
	PassSingle Pass = iota
	// PassCurrent is the first pass of a current-first structure. Only the
	// marked section is shown in it.
	PassCurrent
	// PassRest is the second pass of a current-first structure. Every
	// section except the marked one may be shown in it.
	PassRest
)

func (p Pass) String() string {
	switch p {
	case PassSingle:
		return "single"
	case PassCurrent:
		return "current"
	case PassRest:
		return "rest"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pass) UnmarshalText(b []byte) error {
	for _, candidate := range []Pass{PassSingle, PassCurrent, PassRest} {
		if candidate.String() == string(b) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown pass %q", b)
}

// Visit is one step of the traversal: a content section and the pass it is
// visited in. A current-first traversal visits every section twice.
type Visit struct {
	Section int  `json:"section"`
	Pass    Pass `json:"pass"`
}

// ComputeOrder returns the traversal of content sections 1..N for the given
// settings and course. Section 0 is never included and N <= 0 yields an
// empty traversal.
//
// Topic and day structures walk 1..N. The week structure walks N..1 unless
// the course is being edited. Current-first structures return the current
// pass followed by the rest pass, both ascending; they take precedence over
// the reverse week walk.
func ComputeOrder(s course.Settings, c course.Course) []Visit {
	n := c.NumSections
	if n <= 0 {
		return nil
	}
	structure := s.Clamp().Structure
	switch {
	case structure.IsCurrentFirst():
		return append(currentPass(n), restPass(n)...)
	case reversed(structure, c):
		return descending(n, PassSingle)
	default:
		return ascending(n, PassSingle)
	}
}

// reversed reports whether the week walk runs from the last week back.
func reversed(structure course.Structure, c course.Course) bool {
	return structure == course.StructureWeek && !c.Editing
}

// currentPass visits 1..n looking for the marked section.
func currentPass(n int) []Visit {
	return ascending(n, PassCurrent)
}

// restPass visits 1..n again, skipping whatever the current pass showed.
func restPass(n int) []Visit {
	return ascending(n, PassRest)
}

func ascending(n int, p Pass) []Visit {
	out := make([]Visit, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Visit{Section: i, Pass: p})
	}
	return out
}

func descending(n int, p Pass) []Visit {
	out := make([]Visit, 0, n)
	for i := n; i >= 1; i-- {
		out = append(out, Visit{Section: i, Pass: p})
	}
	return out
}

// Sections flattens visits into section numbers, keeping duplicates.
func Sections(visits []Visit) []int {
	out := make([]int, len(visits))
	for i, v := range visits {
		out[i] = v.Section
	}
	return out
}

// WeekStart returns the moment section n's week is considered started: the
// course start plus n-1 weeks, less the DST allowance.
func WeekStart(n int, c course.Course) time.Time {
	return c.StartDate.Add(time.Duration(n-1)*course.Week - course.DSTAllowance)
}

// DayStart is the day-structure equivalent of [WeekStart].
func DayStart(n int, c course.Course) time.Time {
	return c.StartDate.Add(time.Duration(n-1)*course.Day - course.DSTAllowance)
}
