package layout

import (
	"fmt"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// HiddenReason explains why a visit did not show its section.
type HiddenReason int

const (
	// ReasonNone means the section is shown.
	ReasonNone HiddenReason = iota
	// ReasonHidden means the user may not see the section.
	ReasonHidden
	// ReasonNotStarted means the section's week or day lies in the future.
	ReasonNotStarted
	// ReasonNotCurrent means the current pass skipped a non-marked section.
	ReasonNotCurrent
	// ReasonAlreadyShown means the rest pass skipped the marked section.
	ReasonAlreadyShown
)

func (r HiddenReason) String() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonHidden:
		return "hidden"
	case ReasonNotStarted:
		return "not-started"
	case ReasonNotCurrent:
		return "not-current"
	case ReasonAlreadyShown:
		return "already-shown"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r HiddenReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *HiddenReason) UnmarshalText(b []byte) error {
	for _, candidate := range []HiddenReason{ReasonNone, ReasonHidden, ReasonNotStarted, ReasonNotCurrent, ReasonAlreadyShown} {
		if candidate.String() == string(b) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown hidden reason %q", b)
}

// Visibility is the resolved outcome of one visit.
type Visibility struct {
	Show bool `json:"show"`
	// Placeholder is set for hidden sections that still render a
	// "not available" stub.
	Placeholder bool         `json:"placeholder,omitempty"`
	Reason      HiddenReason `json:"reason,omitempty"`
}

// IsVisible reports whether section s is shown when visited in pass p.
func IsVisible(s course.Section, settings course.Settings, c course.Course, p Pass) bool {
	return Resolve(s, settings, c, p).Show
}

// Resolve decides whether section s is shown when visited in pass p and, if
// not, whether a placeholder takes its place.
//
// A section is visible to the user when it is user-visible, or when it is
// visible but restricted and the restriction is advertised. Timed structures
// outside editing additionally require the section's period to have begun.
// The current pass then shows only the marker; the rest pass shows
// everything but the marker.
func Resolve(s course.Section, settings course.Settings, c course.Course, p Pass) Visibility {
	structure := settings.Clamp().Structure

	if !baseVisible(s) {
		return hidden(ReasonHidden, s, structure, c)
	}
	if !started(s.Number, structure, c) {
		return hidden(ReasonNotStarted, s, structure, c)
	}
	switch p {
	case PassCurrent:
		if s.Number != c.Marker {
			return hidden(ReasonNotCurrent, s, structure, c)
		}
	case PassRest:
		if s.Number == c.Marker {
			return hidden(ReasonAlreadyShown, s, structure, c)
		}
	}
	return Visibility{Show: true}
}

func baseVisible(s course.Section) bool {
	return s.UserVisible || (s.Visible && !s.Available && s.ShowAvailability)
}

func started(n int, structure course.Structure, c course.Course) bool {
	if c.Editing {
		return true
	}
	switch {
	case structure.IsWeekly():
		return !WeekStart(n, c).After(c.Now)
	case structure == course.StructureDay:
		return !DayStart(n, c).After(c.Now)
	default:
		return true
	}
}

// hidden builds the outcome for a section that is not shown. Only the
// ascending walks of non-current-first structures leave a placeholder.
func hidden(r HiddenReason, s course.Section, structure course.Structure, c course.Course) Visibility {
	placeholder := !c.HiddenSections &&
		s.Available &&
		!structure.IsCurrentFirst() &&
		!reversed(structure, c) &&
		r != ReasonNotStarted
	return Visibility{Placeholder: placeholder, Reason: r}
}

// MarkerControl reports whether the "mark as current" control is offered
// for the course. It needs the capability and an editing session, and only
// the topic structures use an instructor marker.
func MarkerControl(settings course.Settings, c course.Course, canSetCurrent bool) bool {
	if !canSetCurrent || !c.Editing {
		return false
	}
	switch settings.Clamp().Structure {
	case course.StructureTopic, course.StructureTopicCurrentFirst:
		return true
	default:
		return false
	}
}
