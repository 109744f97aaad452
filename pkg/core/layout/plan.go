package layout

import (
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// Column presentation constants.
const (
	fullWidth     = 100.0
	columnPadding = 2
)

// Entry is the resolved outcome of one visit in traversal order.
type Entry struct {
	Section     int          `json:"section"`
	Pass        Pass         `json:"pass"`
	Show        bool         `json:"show"`
	Placeholder bool         `json:"placeholder,omitempty"`
	Reason      HiddenReason `json:"reason,omitempty"`
	// Column is the 0-based column the entry renders in, or -1 when it
	// renders nothing.
	Column int `json:"column"`
}

// Rendered reports whether the entry produces output.
func (e Entry) Rendered() bool {
	return e.Show || e.Placeholder
}

// Plan is the output of the layout engine for one request.
type Plan struct {
	Structure course.Structure `json:"structure"`
	// Columns holds the shown content sections per column, in order.
	Columns [][]int `json:"columns"`
	Entries []Entry `json:"entries"`
	// Current is the highlighted section, 0 when none.
	Current int `json:"current"`
	// General reports whether section 0 is rendered above the columns.
	General bool `json:"general"`
	// ColumnWidth is the width of each column in percent.
	ColumnWidth   float64 `json:"column_width"`
	ColumnPadding int     `json:"column_padding"`
	// Settings are the clamped settings the plan was built with.
	Settings course.Settings `json:"settings"`
	// Corrected reports that the supplied settings were out of range and
	// should be written back as Settings.
	Corrected bool `json:"corrected"`
}

// Shown returns the shown sections in display order.
func (p Plan) Shown() []int {
	var out []int
	for _, col := range p.Columns {
		out = append(out, col...)
	}
	return out
}

// Build computes the full layout plan. It never fails: settings are clamped
// and a course without content sections yields a plan with no columns.
func Build(sections course.SectionMap, settings course.Settings, c course.Course) Plan {
	clamped := settings.Clamp()
	plan := Plan{
		Structure: clamped.Structure,
		Settings:  clamped,
		Corrected: clamped != settings,
		Current:   CurrentSection(clamped, c),
		General:   c.Editing || sections.Get(0).HasContent(),
	}

	visits := ComputeOrder(clamped, c)
	plan.Entries = make([]Entry, len(visits))
	var shown []int
	leading := 0
	for i, v := range visits {
		vis := Resolve(sections.Get(v.Section), clamped, c, v.Pass)
		plan.Entries[i] = Entry{
			Section:     v.Section,
			Pass:        v.Pass,
			Show:        vis.Show,
			Placeholder: vis.Placeholder,
			Reason:      vis.Reason,
			Column:      -1,
		}
		if vis.Show {
			shown = append(shown, v.Section)
			if v.Pass == PassCurrent {
				leading++
			}
		}
	}

	plan.Columns = Partition(shown, clamped.EffectiveColumns(len(shown)), WithLeading(leading))
	assignColumns(plan.Entries, plan.Columns)

	plan.ColumnWidth = fullWidth
	if n := len(plan.Columns); n > 1 {
		plan.ColumnWidth = fullWidth/float64(n) - 1
		plan.ColumnPadding = columnPadding
	}
	return plan
}

// assignColumns gives shown entries their partition column. Placeholders
// render in the column that is open when they are reached, which is the
// column of the next shown entry, or the last column when none follows.
func assignColumns(entries []Entry, columns [][]int) {
	var flat []int
	for i, col := range columns {
		for range col {
			flat = append(flat, i)
		}
	}
	next := 0
	for i := range entries {
		if entries[i].Show {
			entries[i].Column = flat[next]
			next++
		}
	}
	open := 0
	if len(flat) > 0 {
		open = flat[len(flat)-1]
	}
	for i := len(entries) - 1; i >= 0; i-- {
		switch {
		case entries[i].Show:
			open = entries[i].Column
		case entries[i].Placeholder:
			entries[i].Column = open
		}
	}
}
