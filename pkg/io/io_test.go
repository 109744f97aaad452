package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

const fixtureJSON = `{
  "course": {"id": "101", "startdate": "2025-09-01T00:00:00Z", "marker": 2},
  "settings": {"structure": "week", "columns": 2},
  "sections": [
    {"section": 0, "summary": "Welcome"},
    {"section": 1, "name": "Getting started"},
    {"section": 3, "uservisible": false, "visible": false}
  ]
}`

func TestReadJSON(t *testing.T) {
	cf, err := ReadJSON(strings.NewReader(fixtureJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if cf.Course.ID != "101" || cf.Course.NumSections != 3 || cf.Course.Marker != 2 {
		t.Errorf("Course = %+v", cf.Course)
	}
	if !cf.Course.StartDate.Equal(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v", cf.Course.StartDate)
	}
	if cf.Settings.Structure != course.StructureWeek || cf.Settings.Columns != 2 {
		t.Errorf("Settings = %+v", cf.Settings)
	}
	if cf.Settings.Element != course.DefaultElement || cf.Settings.Colours != course.DefaultColours() {
		t.Errorf("omitted settings should default, got %+v", cf.Settings)
	}

	m := cf.SectionMap()
	if s := m.Get(1); !s.UserVisible || !s.Visible || !s.Available || s.Name != "Getting started" {
		t.Errorf("section 1 = %+v", s)
	}
	if s := m.Get(3); s.UserVisible || s.Visible || !s.Available {
		t.Errorf("section 3 = %+v", s)
	}
	if s := m.Get(0); s.Summary != "Welcome" {
		t.Errorf("section 0 = %+v", s)
	}
}

func TestReadTOML(t *testing.T) {
	src := `
[course]
id = "202"
numsections = 5
startdate = 2025-09-01T00:00:00Z

[settings]
structure = 4
columns = 7

[[sections]]
section = 2
name = "Recursion"
available = false
showavailability = true
`
	cf, err := ReadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if cf.Course.NumSections != 5 || cf.Course.ID != "202" {
		t.Errorf("Course = %+v", cf.Course)
	}
	if cf.Settings.Structure != course.StructureTopicCurrentFirst {
		t.Errorf("Structure = %v", cf.Settings.Structure)
	}
	if cf.Settings.Columns != 7 {
		t.Errorf("Columns = %d, out-of-range values must be kept", cf.Settings.Columns)
	}
	s := cf.SectionMap().Get(2)
	if s.Available || !s.ShowAvailability || !s.UserVisible {
		t.Errorf("section 2 = %+v", s)
	}
}

func TestReadValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"malformed", `{"course": `, errors.ErrCodeInvalidFormat},
		{"duplicate", `{"sections": [{"section": 1}, {"section": 1}]}`, errors.ErrCodeInvalidCourse},
		{"negative", `{"sections": [{"section": -1}]}`, errors.ErrCodeInvalidCourse},
		{"beyond numsections", `{"course": {"numsections": 2}, "sections": [{"section": 3}]}`, errors.ErrCodeInvalidCourse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cf, err := ReadJSON(strings.NewReader(fixtureJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"course.json", "course.toml"} {
		path := filepath.Join(dir, name)
		if err := Export(cf, path); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		back, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if back.Settings != cf.Settings || back.Course.NumSections != cf.Course.NumSections ||
			!back.Course.StartDate.Equal(cf.Course.StartDate) {
			t.Errorf("%s: round trip changed course or settings: %+v", name, back)
		}
		if !reflect.DeepEqual(back.Sections, cf.Sections) {
			t.Errorf("%s: sections = %+v, want %+v", name, back.Sections, cf.Sections)
		}
	}
}

func TestImportErrors(t *testing.T) {
	if _, err := Import("course.yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(.yaml) error = %v", err)
	}
	if _, err := Import(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v", err)
	}
}

func TestWriteJSONIsReadable(t *testing.T) {
	cf := &CourseFile{
		Course:   course.Course{ID: "9", NumSections: 2},
		Settings: course.DefaultSettings(),
		Sections: []course.Section{{Number: 1, Visible: true, UserVisible: false, Available: true}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(cf, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if back.Sections[0].UserVisible {
		t.Error("explicit false flags must survive the round trip")
	}
}

func TestNewCourseFile(t *testing.T) {
	hidden := false
	cf, err := NewCourseFile(course.Course{}, course.DefaultSettings(), []SectionRecord{
		{Number: 2, UserVisible: &hidden},
		{Number: 1},
	})
	if err != nil {
		t.Fatalf("NewCourseFile: %v", err)
	}
	if cf.Course.NumSections != 2 {
		t.Errorf("NumSections = %d, want 2", cf.Course.NumSections)
	}
	m := cf.SectionMap()
	if m.Get(2).UserVisible || !m.Get(2).Visible || !m.Get(1).UserVisible {
		t.Errorf("flag defaults not applied: %+v %+v", m.Get(1), m.Get(2))
	}

	_, err = NewCourseFile(course.Course{}, course.DefaultSettings(), []SectionRecord{{Number: 1}, {Number: 1}})
	if !errors.Is(err, errors.ErrCodeInvalidCourse) {
		t.Errorf("duplicate sections error = %v, want INVALID_COURSE", err)
	}
}
