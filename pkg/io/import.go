package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// CourseFile is a decoded fixture.
type CourseFile struct {
	Course   course.Course
	Settings course.Settings
	Sections []course.Section
}

// SectionMap indexes the fixture's sections.
func (f *CourseFile) SectionMap() course.SectionMap {
	return course.NewSectionMap(f.Sections)
}

// ReadJSON decodes a JSON fixture from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*CourseFile, error) {
	doc := newDocument()
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode course json")
	}
	return doc.courseFile()
}

// ReadTOML decodes a TOML fixture from r. ReadTOML does not close r.
func ReadTOML(r io.Reader) (*CourseFile, error) {
	doc := newDocument()
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode course toml")
	}
	return doc.courseFile()
}

// Import reads the fixture at path, choosing the decoder by extension:
// .json or .toml.
func Import(path string) (*CourseFile, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	cf, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

func readerFor(path string) (func(io.Reader) (*CourseFile, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported course file %q: want .json or .toml", path)
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// NewCourseFile validates sections the way fixtures are validated: numbers
// must be unique and lie in 0..numsections, and a zero numsections becomes
// the highest listed section.
func NewCourseFile(c course.Course, s course.Settings, sections []SectionRecord) (*CourseFile, error) {
	return document{Course: c, Settings: s, Sections: sections}.courseFile()
}

func (d document) courseFile() (*CourseFile, error) {
	cf := &CourseFile{Course: d.Course, Settings: d.Settings}

	seen := make(map[int]bool, len(d.Sections))
	highest := 0
	for _, s := range d.Sections {
		if s.Number < 0 {
			return nil, errors.New(errors.ErrCodeInvalidCourse, "section %d: negative section number", s.Number)
		}
		if seen[s.Number] {
			return nil, errors.New(errors.ErrCodeInvalidCourse, "section %d: listed twice", s.Number)
		}
		seen[s.Number] = true
		highest = max(highest, s.Number)
		cf.Sections = append(cf.Sections, s.Section())
	}

	if cf.Course.NumSections == 0 {
		cf.Course.NumSections = highest
	}
	if highest > cf.Course.NumSections {
		return nil, errors.New(errors.ErrCodeInvalidCourse,
			"section %d beyond numsections %d", highest, cf.Course.NumSections)
	}
	return cf, nil
}
