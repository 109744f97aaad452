package layout

import (
	"reflect"
	"testing"
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

func settingsFor(s course.Structure, columns int) course.Settings {
	out := course.DefaultSettings()
	out.Structure = s
	out.Columns = columns
	return out
}

func seq(from, to int) []int {
	var out []int
	if from <= to {
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out
	}
	for i := from; i >= to; i-- {
		out = append(out, i)
	}
	return out
}

func TestComputeOrderAscending(t *testing.T) {
	cases := []struct {
		name      string
		structure course.Structure
		editing   bool
	}{
		{"topic", course.StructureTopic, false},
		{"day", course.StructureDay, false},
		{"week editing", course.StructureWeek, true},
		{"invalid structure", course.Structure(0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for n := 0; n <= 12; n++ {
				visits := ComputeOrder(settingsFor(tc.structure, 1), course.Course{NumSections: n, Editing: tc.editing})
				got := Sections(visits)
				if n == 0 {
					if len(got) != 0 {
						t.Errorf("N=0: ComputeOrder() = %v, want empty", got)
					}
					continue
				}
				if !reflect.DeepEqual(got, seq(1, n)) {
					t.Errorf("N=%d: ComputeOrder() = %v, want %v", n, got, seq(1, n))
				}
				for _, v := range visits {
					if v.Pass != PassSingle {
						t.Errorf("N=%d: visit %+v, want PassSingle", n, v)
					}
				}
			}
		})
	}
}

func TestComputeOrderWeekReversed(t *testing.T) {
	for n := 1; n <= 12; n++ {
		c := course.Course{NumSections: n}
		week := Sections(ComputeOrder(settingsFor(course.StructureWeek, 1), c))
		topic := Sections(ComputeOrder(settingsFor(course.StructureTopic, 1), c))
		if !reflect.DeepEqual(week, seq(n, 1)) {
			t.Errorf("N=%d: week order = %v, want %v", n, week, seq(n, 1))
		}
		for i := range topic {
			if week[i] != topic[len(topic)-1-i] {
				t.Fatalf("N=%d: week order %v is not the reverse of %v", n, week, topic)
			}
		}
	}
}

func TestComputeOrderCurrentFirstPasses(t *testing.T) {
	for _, s := range []course.Structure{course.StructureWeekCurrentFirst, course.StructureTopicCurrentFirst} {
		visits := ComputeOrder(settingsFor(s, 1), course.Course{NumSections: 3, Marker: 2})
		want := []Visit{
			{1, PassCurrent}, {2, PassCurrent}, {3, PassCurrent},
			{1, PassRest}, {2, PassRest}, {3, PassRest},
		}
		if !reflect.DeepEqual(visits, want) {
			t.Errorf("%v: ComputeOrder() = %v, want %v", s, visits, want)
		}
	}
}

func TestComputeOrderNegativeSections(t *testing.T) {
	if got := ComputeOrder(course.DefaultSettings(), course.Course{NumSections: -4}); got != nil {
		t.Errorf("ComputeOrder(N=-4) = %v, want nil", got)
	}
}

func TestCurrentFirstShownSequence(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []course.Structure{course.StructureWeekCurrentFirst, course.StructureTopicCurrentFirst} {
		for n := 1; n <= 12; n++ {
			for m := 1; m <= n; m++ {
				c := course.Course{NumSections: n, Marker: m, StartDate: start, Now: start.Add(100 * course.Week)}
				settings := settingsFor(s, 1)
				var shown []int
				for _, v := range ComputeOrder(settings, c) {
					if IsVisible(course.DefaultSection(v.Section), settings, c, v.Pass) {
						shown = append(shown, v.Section)
					}
				}
				want := []int{m}
				for i := 1; i <= n; i++ {
					if i != m {
						want = append(want, i)
					}
				}
				if !reflect.DeepEqual(shown, want) {
					t.Errorf("%v N=%d marker=%d: shown = %v, want %v", s, n, m, shown, want)
				}
			}
		}
	}
}

func TestCurrentFirstInvalidMarkerDegenerates(t *testing.T) {
	for _, marker := range []int{0, 7, -1} {
		c := course.Course{NumSections: 5, Marker: marker}
		plan := Build(course.SectionMap{}, settingsFor(course.StructureTopicCurrentFirst, 1), c)
		if got := plan.Shown(); !reflect.DeepEqual(got, seq(1, 5)) {
			t.Errorf("marker=%d: shown = %v, want %v", marker, got, seq(1, 5))
		}
	}
}

func TestWeekAndDayStart(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	c := course.Course{StartDate: start}

	if got, want := WeekStart(1, c), start.Add(-2*time.Hour); !got.Equal(want) {
		t.Errorf("WeekStart(1) = %v, want %v", got, want)
	}
	if got, want := WeekStart(3, c), start.Add(14*24*time.Hour-2*time.Hour); !got.Equal(want) {
		t.Errorf("WeekStart(3) = %v, want %v", got, want)
	}
	if got, want := DayStart(3, c), start.Add(48*time.Hour-2*time.Hour); !got.Equal(want) {
		t.Errorf("DayStart(3) = %v, want %v", got, want)
	}
}
