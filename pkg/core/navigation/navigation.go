// Package navigation builds the section selector shown on single-section
// pages: links to the adjacent sections and a jump menu.
package navigation

import (
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/layout"
	"github.com/uofr/moodle-format-topcoll/pkg/core/text"
)

// LabelLength is the character budget for previous/next labels.
const LabelLength = 18

// MainPage is the menu entry that leads back to the course page.
const (
	MainPage      = -1
	MainPageLabel = "Main course page"
)

// Link points to an adjacent section.
type Link struct {
	Section int    `json:"section"`
	Label   string `json:"label"`
}

// MenuItem is one entry of the jump menu.
type MenuItem struct {
	Section int    `json:"section"`
	Label   string `json:"label"`
}

// Selector is the navigation block for one displayed section.
type Selector struct {
	Current  int   `json:"current"`
	Previous *Link `json:"previous,omitempty"`
	Next     *Link `json:"next,omitempty"`
	// Shortened is set when either adjacent label was truncated, so the
	// menu between them can be drawn narrower.
	Shortened bool       `json:"shortened"`
	Menu      []MenuItem `json:"menu"`
}

// BuildSelector returns the selector for the section currently displayed.
// Adjacent links skip sections the user cannot see and never lead to
// section 0. The jump menu lists every visible section 0..N except the
// displayed one.
func BuildSelector(sections course.SectionMap, settings course.Settings, c course.Course, current int) Selector {
	sel := Selector{
		Current: current,
		Menu:    []MenuItem{{Section: MainPage, Label: MainPageLabel}},
	}

	visible := func(n int) bool {
		if n == 0 {
			return true
		}
		return layout.IsVisible(sections.Get(n), settings, c, layout.PassSingle)
	}
	name := func(n int) string {
		return course.SectionName(sections.Get(n), settings, c)
	}

	for n := current - 1; n > 0; n-- {
		if visible(n) {
			sel.Previous = sel.link(n, name(n))
			break
		}
	}
	for n := current + 1; n <= c.NumSections; n++ {
		if visible(n) {
			sel.Next = sel.link(n, name(n))
			break
		}
	}

	for n := 0; n <= c.NumSections; n++ {
		if n != current && visible(n) {
			sel.Menu = append(sel.Menu, MenuItem{Section: n, Label: name(n)})
		}
	}
	return sel
}

func (sel *Selector) link(n int, label string) *Link {
	if text.Shortened(label, LabelLength) {
		label = text.Truncate(label, LabelLength)
		sel.Shortened = true
	}
	return &Link{Section: n, Label: label}
}
