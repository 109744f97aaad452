package course

// Section is one block of course content as materialized by the host.
type Section struct {
	Number  int    `json:"section" toml:"section"`
	Name    string `json:"name,omitempty" toml:"name"`
	Summary string `json:"summary,omitempty" toml:"summary"`
	// Sequence lists the course-module ids placed in this section.
	Sequence []int `json:"sequence,omitempty" toml:"sequence"`

	// Visible is the raw visibility flag set by an instructor.
	Visible bool `json:"visible" toml:"visible"`
	// UserVisible is whether the current user may access the section.
	UserVisible bool `json:"uservisible" toml:"uservisible"`
	// Available is false while access restrictions are unmet.
	Available        bool   `json:"available" toml:"available"`
	ShowAvailability bool   `json:"showavailability" toml:"showavailability"`
	AvailableInfo    string `json:"availableinfo,omitempty" toml:"availableinfo"`
}

// DefaultSection synthesizes a section the host did not supply. It is
// visible to everyone, available and carries no availability message.
func DefaultSection(number int) Section {
	return Section{
		Number:      number,
		Visible:     true,
		UserVisible: true,
		Available:   true,
	}
}

// HasContent reports whether the section has a summary or any modules.
func (s Section) HasContent() bool {
	return s.Summary != "" || len(s.Sequence) > 0
}

// SectionMap is a 0-indexed mapping from section number to section.
type SectionMap map[int]Section

// NewSectionMap indexes sections by their Number. Later duplicates win.
func NewSectionMap(sections []Section) SectionMap {
	m := make(SectionMap, len(sections))
	for _, s := range sections {
		m[s.Number] = s
	}
	return m
}

// Get returns section n, synthesizing a default section when it is missing.
func (m SectionMap) Get(n int) Section {
	if s, ok := m[n]; ok {
		s.Number = n
		return s
	}
	return DefaultSection(n)
}

// Slice returns sections 0..numSections in order, synthesizing missing ones.
func (m SectionMap) Slice(numSections int) []Section {
	if numSections < 0 {
		numSections = 0
	}
	out := make([]Section, 0, numSections+1)
	for n := 0; n <= numSections; n++ {
		out = append(out, m.Get(n))
	}
	return out
}
