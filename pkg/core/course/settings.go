package course

import (
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// Column bounds for the layout.
const (
	MinColumns     = 1
	MaxColumns     = 4
	DefaultColumns = 1
)

// Default toggle colours, six-digit RGB without the leading '#'.
const (
	DefaultForeground      = "000000"
	DefaultBackground      = "e2e2f2"
	DefaultBackgroundHover = "eeeeff"
)

// Colours holds the toggle colours injected into the course page.
type Colours struct {
	Foreground      string `json:"foreground" toml:"foreground" bson:"tgfgcolour"`
	Background      string `json:"background" toml:"background" bson:"tgbgcolour"`
	BackgroundHover string `json:"background_hover" toml:"background_hover" bson:"tgbghvrcolour"`
}

// DefaultColours returns the built-in toggle colours.
func DefaultColours() Colours {
	return Colours{
		Foreground:      DefaultForeground,
		Background:      DefaultBackground,
		BackgroundHover: DefaultBackgroundHover,
	}
}

// Validate reports the first invalid colour.
func (c Colours) Validate() error {
	for _, v := range []string{c.Foreground, c.Background, c.BackgroundHover} {
		if err := errors.ValidateColour(v); err != nil {
			return err
		}
	}
	return nil
}

// Settings is the per-course layout configuration.
type Settings struct {
	Structure Structure `json:"structure" toml:"structure" bson:"layoutstructure"`
	Columns   int       `json:"columns" toml:"columns" bson:"layoutcolumns"`
	Element   Element   `json:"element" toml:"element" bson:"layoutelement"`
	Colours   Colours   `json:"colours" toml:"colours" bson:"colours"`
}

// DefaultSettings returns the settings a course starts with.
func DefaultSettings() Settings {
	return Settings{
		Structure: DefaultStructure,
		Columns:   DefaultColumns,
		Element:   DefaultElement,
		Colours:   DefaultColours(),
	}
}

// Clamp returns s with every out-of-range value corrected. Columns above
// MaxColumns become MaxColumns and columns below MinColumns become
// MinColumns; unknown structures and elements fall back to their defaults;
// invalid colours are replaced individually. Colours are normalized to six
// lower-case hex digits. Clamp is idempotent.
func (s Settings) Clamp() Settings {
	out := s
	switch {
	case out.Columns > MaxColumns:
		out.Columns = MaxColumns
	case out.Columns < MinColumns:
		out.Columns = MinColumns
	}
	if !out.Structure.Valid() {
		out.Structure = DefaultStructure
	}
	if !out.Element.Valid() {
		out.Element = DefaultElement
	}
	out.Colours = clampColours(out.Colours)
	return out
}

// NeedsWriteBack reports whether the column count is out of range. Only
// that correction is persisted; other invalid values are clamped on read.
func (s Settings) NeedsWriteBack() bool {
	return s.Clamp().Columns != s.Columns
}

func clampColours(c Colours) Colours {
	def := DefaultColours()
	return Colours{
		Foreground:      clampColour(c.Foreground, def.Foreground),
		Background:      clampColour(c.Background, def.Background),
		BackgroundHover: clampColour(c.BackgroundHover, def.BackgroundHover),
	}
}

func clampColour(v, fallback string) string {
	if errors.ValidateColour(v) != nil {
		return fallback
	}
	return errors.NormalizeColour(v)
}

// EffectiveColumns returns the column count used for partitioning: the
// clamped setting further limited to the number of shown sections, never
// below one.
func (s Settings) EffectiveColumns(numShown int) int {
	cols := s.Clamp().Columns
	if numShown < cols {
		cols = numShown
	}
	if cols < MinColumns {
		cols = MinColumns
	}
	return cols
}
