package layout

import (
	"testing"
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

func TestResolveBasePredicate(t *testing.T) {
	topic := settingsFor(course.StructureTopic, 1)
	tests := []struct {
		name    string
		section course.Section
		hidden  bool
		want    Visibility
	}{
		{
			name:    "user visible",
			section: course.Section{Number: 1, UserVisible: true, Visible: true, Available: true},
			want:    Visibility{Show: true},
		},
		{
			name:    "restricted but advertised",
			section: course.Section{Number: 1, UserVisible: false, Visible: true, Available: false, ShowAvailability: true},
			want:    Visibility{Show: true},
		},
		{
			name:    "hidden and available gets placeholder",
			section: course.Section{Number: 1, UserVisible: false, Visible: true, Available: true},
			want:    Visibility{Placeholder: true, Reason: ReasonHidden},
		},
		{
			name:    "hidden sections collapsed",
			section: course.Section{Number: 1, UserVisible: false, Visible: true, Available: true},
			hidden:  true,
			want:    Visibility{Reason: ReasonHidden},
		},
		{
			name:    "restricted and not advertised",
			section: course.Section{Number: 1, UserVisible: false, Visible: true, Available: false},
			want:    Visibility{Reason: ReasonHidden},
		},
		{
			name:    "invisible restricted",
			section: course.Section{Number: 1, UserVisible: false, Visible: false, Available: false, ShowAvailability: true},
			want:    Visibility{Reason: ReasonHidden},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := course.Course{NumSections: 3, HiddenSections: tt.hidden}
			got := Resolve(tt.section, topic, c, PassSingle)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
			if IsVisible(tt.section, topic, c, PassSingle) != tt.want.Show {
				t.Errorf("IsVisible() disagrees with Resolve()")
			}
		})
	}
}

func TestResolveTimeGating(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	section := course.DefaultSection(3)

	tests := []struct {
		name      string
		structure course.Structure
		now       time.Time
		editing   bool
		wantShow  bool
	}{
		{"week future", course.StructureWeek, start.Add(10 * course.Day), false, false},
		{"week started", course.StructureWeek, start.Add(15 * course.Day), false, true},
		{"week inside DST allowance", course.StructureWeek, start.Add(2*course.Week - time.Hour), false, true},
		{"week editing ignores time", course.StructureWeek, start, true, true},
		{"week current first future", course.StructureWeekCurrentFirst, start, false, false},
		{"day future", course.StructureDay, start.Add(course.Day), false, false},
		{"day started", course.StructureDay, start.Add(2 * course.Day), false, true},
		{"topic ignores time", course.StructureTopic, start.Add(-course.Week), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := course.Course{NumSections: 5, StartDate: start, Now: tt.now, Editing: tt.editing}
			pass := PassSingle
			if tt.structure.IsCurrentFirst() {
				pass = PassRest
			}
			got := Resolve(section, settingsFor(tt.structure, 1), c, pass)
			if got.Show != tt.wantShow {
				t.Errorf("Resolve().Show = %v, want %v", got.Show, tt.wantShow)
			}
			if !got.Show && got.Reason != ReasonNotStarted {
				t.Errorf("Resolve().Reason = %v, want %v", got.Reason, ReasonNotStarted)
			}
			if !got.Show && got.Placeholder {
				t.Error("future sections must not get a placeholder")
			}
		})
	}
}

func TestFutureWeekNeverShown(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(3 * course.Day)
	c := course.Course{NumSections: 6, StartDate: start, Now: now}
	settings := settingsFor(course.StructureWeek, 1)
	for n := 1; n <= 6; n++ {
		s := course.Section{Number: n, UserVisible: true, Visible: true, Available: false, ShowAvailability: true}
		future := WeekStart(n, c).After(now)
		if future && IsVisible(s, settings, c, PassSingle) {
			t.Errorf("section %d starts %v after now %v but is visible", n, WeekStart(n, c), now)
		}
	}
}

func TestResolveCurrentFirstPasses(t *testing.T) {
	settings := settingsFor(course.StructureTopicCurrentFirst, 1)
	c := course.Course{NumSections: 4, Marker: 2}

	tests := []struct {
		section int
		pass    Pass
		want    Visibility
	}{
		{2, PassCurrent, Visibility{Show: true}},
		{1, PassCurrent, Visibility{Reason: ReasonNotCurrent}},
		{2, PassRest, Visibility{Reason: ReasonAlreadyShown}},
		{3, PassRest, Visibility{Show: true}},
	}
	for _, tt := range tests {
		got := Resolve(course.DefaultSection(tt.section), settings, c, tt.pass)
		if got != tt.want {
			t.Errorf("Resolve(section %d, %v) = %+v, want %+v", tt.section, tt.pass, got, tt.want)
		}
	}

	hiddenSection := course.Section{Number: 3, Visible: true, Available: true}
	if got := Resolve(hiddenSection, settings, c, PassRest); got.Placeholder {
		t.Errorf("current-first structures never render placeholders, got %+v", got)
	}
}

func TestResolveReverseWeekPlaceholder(t *testing.T) {
	settings := settingsFor(course.StructureWeek, 1)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	section := course.Section{Number: 2, UserVisible: false, Visible: true, Available: true}

	tests := []struct {
		name    string
		editing bool
		want    Visibility
	}{
		{"descending walk", false, Visibility{Reason: ReasonHidden}},
		{"editing walks ascending", true, Visibility{Placeholder: true, Reason: ReasonHidden}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := course.Course{NumSections: 4, StartDate: start, Now: start.AddDate(0, 3, 0), Editing: tt.editing}
			if got := Resolve(section, settings, c, PassSingle); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMarkerControl(t *testing.T) {
	tests := []struct {
		structure course.Structure
		editing   bool
		can       bool
		want      bool
	}{
		{course.StructureTopic, true, true, true},
		{course.StructureTopicCurrentFirst, true, true, true},
		{course.StructureTopic, false, true, false},
		{course.StructureTopic, true, false, false},
		{course.StructureWeek, true, true, false},
		{course.StructureDay, true, true, false},
	}
	for _, tt := range tests {
		c := course.Course{Editing: tt.editing}
		if got := MarkerControl(settingsFor(tt.structure, 1), c, tt.can); got != tt.want {
			t.Errorf("MarkerControl(%v, editing=%v, can=%v) = %v, want %v", tt.structure, tt.editing, tt.can, got, tt.want)
		}
	}
}
