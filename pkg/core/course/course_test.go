package course

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSettingsClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{
			name: "in range unchanged",
			in:   Settings{Structure: StructureWeek, Columns: 3, Element: 2, Colours: DefaultColours()},
			want: Settings{Structure: StructureWeek, Columns: 3, Element: 2, Colours: DefaultColours()},
		},
		{
			name: "too many columns",
			in:   Settings{Structure: StructureTopic, Columns: 9, Element: 1, Colours: DefaultColours()},
			want: Settings{Structure: StructureTopic, Columns: 4, Element: 1, Colours: DefaultColours()},
		},
		{
			name: "zero columns",
			in:   Settings{Structure: StructureTopic, Columns: 0, Element: 1, Colours: DefaultColours()},
			want: Settings{Structure: StructureTopic, Columns: 1, Element: 1, Colours: DefaultColours()},
		},
		{
			name: "negative columns",
			in:   Settings{Structure: StructureTopic, Columns: -3, Element: 1, Colours: DefaultColours()},
			want: Settings{Structure: StructureTopic, Columns: 1, Element: 1, Colours: DefaultColours()},
		},
		{
			name: "unknown structure and element",
			in:   Settings{Structure: 42, Columns: 2, Element: 9, Colours: DefaultColours()},
			want: Settings{Structure: StructureTopic, Columns: 2, Element: 1, Colours: DefaultColours()},
		},
		{
			name: "colours normalized and replaced",
			in:   Settings{Structure: StructureDay, Columns: 1, Element: 1, Colours: Colours{Foreground: "#ABCDEF", Background: "nope", BackgroundHover: "eeeeff"}},
			want: Settings{Structure: StructureDay, Columns: 1, Element: 1, Colours: Colours{Foreground: "abcdef", Background: DefaultBackground, BackgroundHover: "eeeeff"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamp()
			if got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
			if again := got.Clamp(); again != got {
				t.Errorf("Clamp() not idempotent: %+v then %+v", got, again)
			}
			if wantWrite := tt.in.Columns != tt.want.Columns; tt.in.NeedsWriteBack() != wantWrite {
				t.Errorf("NeedsWriteBack() = %v, want %v", tt.in.NeedsWriteBack(), wantWrite)
			}
		})
	}
}

func TestClampIdempotentForOutOfRangeColumns(t *testing.T) {
	for _, cols := range []int{-10, -1, 0, 5, 100} {
		s := DefaultSettings()
		s.Columns = cols
		first := s.Clamp()
		second := s.Clamp()
		if first != second || first.Clamp() != first {
			t.Errorf("columns=%d: Clamp results differ: %+v vs %+v", cols, first, second)
		}
	}
}

func TestEffectiveColumns(t *testing.T) {
	tests := []struct {
		columns, shown, want int
	}{
		{4, 10, 4},
		{4, 2, 2},
		{3, 0, 1},
		{7, 10, 4},
		{0, 10, 1},
	}
	for _, tt := range tests {
		s := DefaultSettings()
		s.Columns = tt.columns
		if got := s.EffectiveColumns(tt.shown); got != tt.want {
			t.Errorf("EffectiveColumns(columns=%d, shown=%d) = %d, want %d", tt.columns, tt.shown, got, tt.want)
		}
	}
}

func TestStructurePredicates(t *testing.T) {
	tests := []struct {
		s                           Structure
		weekly, currentFirst, timed bool
		unit                        string
	}{
		{StructureTopic, false, false, false, "Topic"},
		{StructureWeek, true, false, true, "Week"},
		{StructureWeekCurrentFirst, true, true, true, "Week"},
		{StructureTopicCurrentFirst, false, true, false, "Topic"},
		{StructureDay, false, false, true, "Day"},
	}
	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			if tt.s.IsWeekly() != tt.weekly {
				t.Errorf("IsWeekly() = %v, want %v", tt.s.IsWeekly(), tt.weekly)
			}
			if tt.s.IsCurrentFirst() != tt.currentFirst {
				t.Errorf("IsCurrentFirst() = %v, want %v", tt.s.IsCurrentFirst(), tt.currentFirst)
			}
			if tt.s.IsTimed() != tt.timed {
				t.Errorf("IsTimed() = %v, want %v", tt.s.IsTimed(), tt.timed)
			}
			if tt.s.Unit() != tt.unit {
				t.Errorf("Unit() = %q, want %q", tt.s.Unit(), tt.unit)
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	tests := []struct {
		in      string
		want    Structure
		wantErr bool
	}{
		{"topic", StructureTopic, false},
		{"Week", StructureWeek, false},
		{"week-current-first", StructureWeekCurrentFirst, false},
		{"4", StructureTopicCurrentFirst, false},
		{" day ", StructureDay, false},
		{"9", 0, true},
		{"month", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseStructure(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStructure(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStructure(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStructureJSON(t *testing.T) {
	var s struct {
		A Structure `json:"a"`
		B Structure `json:"b"`
		C Structure `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"week","b":4,"c":7}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.A != StructureWeek || s.B != StructureTopicCurrentFirst || s.C != 7 {
		t.Errorf("got %v %v %v", s.A, s.B, int(s.C))
	}

	data, err := json.Marshal(StructureDay)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"day"` {
		t.Errorf("Marshal(StructureDay) = %s, want \"day\"", data)
	}
}

func TestElementDecorations(t *testing.T) {
	tests := []struct {
		e                         Element
		number, toggle, structure bool
	}{
		{1, true, true, true},
		{2, true, true, false},
		{3, false, true, true},
		{4, false, true, false},
		{5, true, false, true},
		{6, true, false, false},
	}
	for _, tt := range tests {
		if tt.e.ShowsSectionNumber() != tt.number || tt.e.ShowsToggleWord() != tt.toggle || tt.e.ShowsStructureLabel() != tt.structure {
			t.Errorf("Element(%d) decorations = %v/%v/%v, want %v/%v/%v", tt.e,
				tt.e.ShowsSectionNumber(), tt.e.ShowsToggleWord(), tt.e.ShowsStructureLabel(),
				tt.number, tt.toggle, tt.structure)
		}
	}
}

func TestSectionMapGet(t *testing.T) {
	m := NewSectionMap([]Section{
		{Number: 0, Summary: "Welcome", Visible: true, UserVisible: true, Available: true},
		{Number: 2, Name: "Graphs", Visible: false, UserVisible: false, Available: true},
	})

	if got := m.Get(2); got.Name != "Graphs" || got.UserVisible {
		t.Errorf("Get(2) = %+v", got)
	}
	missing := m.Get(1)
	if !missing.UserVisible || !missing.Visible || !missing.Available || missing.Number != 1 {
		t.Errorf("Get(1) should synthesize a visible default, got %+v", missing)
	}
	if got := m.Slice(3); len(got) != 4 || got[3].Number != 3 {
		t.Errorf("Slice(3) = %+v", got)
	}
	if got := m.Slice(-1); len(got) != 1 {
		t.Errorf("Slice(-1) length = %d, want 1", len(got))
	}
}

func TestSetMarker(t *testing.T) {
	c := Course{NumSections: 5, Marker: 2}
	if c.SetMarker(3, false) {
		t.Error("SetMarker without capability should be ignored")
	}
	if c.SetMarker(-1, true) {
		t.Error("SetMarker(-1) should be ignored")
	}
	if !c.SetMarker(4, true) || c.Marker != 4 {
		t.Errorf("SetMarker(4) marker = %d, want 4", c.Marker)
	}
	if !c.SetMarker(0, true) || c.ValidMarker() {
		t.Error("SetMarker(0) should clear the marker")
	}
}

func TestSectionName(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	c := Course{NumSections: 10, StartDate: start}

	tests := []struct {
		name      string
		section   Section
		structure Structure
		want      string
	}{
		{"explicit", Section{Number: 3, Name: "Recursion"}, StructureWeek, "Recursion"},
		{"general", Section{Number: 0}, StructureTopic, "General"},
		{"topic", Section{Number: 3}, StructureTopic, "Topic 3"},
		{"week", Section{Number: 2}, StructureWeek, "8 September - 14 September"},
		{"day", Section{Number: 3}, StructureDay, "Wednesday 3 September"},
		{"invalid structure", Section{Number: 1}, 0, "Topic 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SectionName(tt.section, Settings{Structure: tt.structure}, c)
			if got != tt.want {
				t.Errorf("SectionName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	c := Course{NumSections: 3, StartDate: start}
	want := start.Add(21 * 24 * time.Hour)
	if !c.EndDate().Equal(want) {
		t.Errorf("EndDate() = %v, want %v", c.EndDate(), want)
	}
}
