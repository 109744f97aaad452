package course

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Structure is the layout structure: how sections are ordered and gated.
// The numeric values match the stored setting codes.
type Structure int

const (
	StructureTopic             Structure = 1
	StructureWeek              Structure = 2
	StructureWeekCurrentFirst  Structure = 3
	StructureTopicCurrentFirst Structure = 4
	StructureDay               Structure = 5
)

// DefaultStructure is used when a stored structure is out of range.
const DefaultStructure = StructureTopic

var structureNames = map[Structure]string{
	StructureTopic:             "topic",
	StructureWeek:              "week",
	StructureWeekCurrentFirst:  "week-current-first",
	StructureTopicCurrentFirst: "topic-current-first",
	StructureDay:               "day",
}

// Structures lists every valid structure in code order.
var Structures = []Structure{
	StructureTopic,
	StructureWeek,
	StructureWeekCurrentFirst,
	StructureTopicCurrentFirst,
	StructureDay,
}

// Valid reports whether s is a known structure code.
func (s Structure) Valid() bool {
	_, ok := structureNames[s]
	return ok
}

func (s Structure) String() string {
	if name, ok := structureNames[s]; ok {
		return name
	}
	return fmt.Sprintf("structure(%d)", int(s))
}

// IsWeekly reports whether sections are calendar weeks.
func (s Structure) IsWeekly() bool {
	return s == StructureWeek || s == StructureWeekCurrentFirst
}

// IsCurrentFirst reports whether the marked section is shown before the rest.
func (s Structure) IsCurrentFirst() bool {
	return s == StructureWeekCurrentFirst || s == StructureTopicCurrentFirst
}

// IsTimed reports whether sections are gated by their start time.
func (s Structure) IsTimed() bool {
	return s.IsWeekly() || s == StructureDay
}

// Unit returns the word used to label a single section ("Topic", "Week" or "Day").
func (s Structure) Unit() string {
	switch {
	case s.IsWeekly():
		return "Week"
	case s == StructureDay:
		return "Day"
	default:
		return "Topic"
	}
}

// ParseStructure accepts either a structure name ("week-current-first") or
// its numeric code ("3").
func ParseStructure(v string) (Structure, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	if n, err := strconv.Atoi(v); err == nil {
		if s := Structure(n); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("unknown structure code %d", n)
	}
	for s, name := range structureNames {
		if name == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown structure %q", v)
}

// MarshalText encodes the structure by name.
func (s Structure) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return []byte(strconv.Itoa(int(s))), nil
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a structure name or code. Unknown values decode to
// their raw code when numeric so that Clamp can correct them later.
func (s *Structure) UnmarshalText(b []byte) error {
	parsed, err := ParseStructure(string(b))
	if err == nil {
		*s = parsed
		return nil
	}
	if n, convErr := strconv.Atoi(strings.TrimSpace(string(b))); convErr == nil {
		*s = Structure(n)
		return nil
	}
	return err
}

// UnmarshalJSON accepts both the numeric code and the name.
func (s *Structure) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		return s.UnmarshalText([]byte(v))
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	*s = Structure(n)
	return nil
}

// Element selects which decorations surround a section toggle. It has no
// effect on ordering or columns.
type Element int

// Element bounds.
const (
	MinElement     Element = 1
	MaxElement     Element = 6
	DefaultElement Element = 1
)

// Valid reports whether e is within [MinElement, MaxElement].
func (e Element) Valid() bool { return e >= MinElement && e <= MaxElement }

// ShowsSectionNumber reports whether the section number is shown beside the toggle.
func (e Element) ShowsSectionNumber() bool {
	switch e {
	case 1, 2, 5, 6:
		return true
	}
	return false
}

// ShowsToggleWord reports whether the toggle title is suffixed with " - Toggle".
func (e Element) ShowsToggleWord() bool {
	switch e {
	case 1, 2, 3, 4:
		return true
	}
	return false
}

// ShowsStructureLabel reports whether the unit word and number ("Week 3") are
// shown on the right of the toggle.
func (e Element) ShowsStructureLabel() bool {
	switch e {
	case 1, 3, 5:
		return true
	}
	return false
}
