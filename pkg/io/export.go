package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// document is the wire form shared by JSON and TOML.
type document struct {
	Course   course.Course   `json:"course" toml:"course"`
	Settings course.Settings `json:"settings" toml:"settings"`
	Sections []SectionRecord `json:"sections" toml:"sections"`
}

func newDocument() document {
	return document{Settings: course.DefaultSettings()}
}

// SectionRecord mirrors course.Section with optional flags so hand-written
// fixtures and API requests can omit them. Missing visible, uservisible and
// available flags are true.
type SectionRecord struct {
	Number           int    `json:"section" toml:"section"`
	Name             string `json:"name,omitempty" toml:"name,omitempty"`
	Summary          string `json:"summary,omitempty" toml:"summary,omitempty"`
	Sequence         []int  `json:"sequence,omitempty" toml:"sequence,omitempty"`
	Visible          *bool  `json:"visible,omitempty" toml:"visible,omitempty"`
	UserVisible      *bool  `json:"uservisible,omitempty" toml:"uservisible,omitempty"`
	Available        *bool  `json:"available,omitempty" toml:"available,omitempty"`
	ShowAvailability bool   `json:"showavailability,omitempty" toml:"showavailability,omitempty"`
	AvailableInfo    string `json:"availableinfo,omitempty" toml:"availableinfo,omitempty"`
}

func orTrue(b *bool) bool {
	return b == nil || *b
}

// Section converts the record, applying the flag defaults.
func (s SectionRecord) Section() course.Section {
	return course.Section{
		Number:           s.Number,
		Name:             s.Name,
		Summary:          s.Summary,
		Sequence:         s.Sequence,
		Visible:          orTrue(s.Visible),
		UserVisible:      orTrue(s.UserVisible),
		Available:        orTrue(s.Available),
		ShowAvailability: s.ShowAvailability,
		AvailableInfo:    s.AvailableInfo,
	}
}

func fromSection(s course.Section) SectionRecord {
	visible, userVisible, available := s.Visible, s.UserVisible, s.Available
	return SectionRecord{
		Number:           s.Number,
		Name:             s.Name,
		Summary:          s.Summary,
		Sequence:         s.Sequence,
		Visible:          &visible,
		UserVisible:      &userVisible,
		Available:        &available,
		ShowAvailability: s.ShowAvailability,
		AvailableInfo:    s.AvailableInfo,
	}
}

func toDocument(cf *CourseFile) document {
	doc := document{Course: cf.Course, Settings: cf.Settings}
	for _, s := range cf.Sections {
		doc.Sections = append(doc.Sections, fromSection(s))
	}
	return doc
}

// WriteJSON encodes a fixture as indented JSON. The output can be read back
// with [ReadJSON].
func WriteJSON(cf *CourseFile, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(cf)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a fixture as TOML.
func WriteTOML(cf *CourseFile, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toDocument(cf)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes a fixture to path, choosing the encoder by extension.
func Export(cf *CourseFile, path string) error {
	if _, err := readerFor(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if isTOML(path) {
		return WriteTOML(cf, f)
	}
	return WriteJSON(cf, f)
}
