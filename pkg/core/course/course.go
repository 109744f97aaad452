package course

import "time"

// Durations used by the timed structures.
const (
	Day  = 24 * time.Hour
	Week = 7 * Day

	// DSTAllowance is subtracted from period boundaries so a daylight-saving
	// shift never hides a section that has just started.
	DSTAllowance = 2 * time.Hour
)

// Course is the request-scoped course context.
type Course struct {
	ID          string    `json:"id" toml:"id"`
	NumSections int       `json:"numsections" toml:"numsections"`
	StartDate   time.Time `json:"startdate" toml:"startdate"`
	// Marker is the section an instructor designated current; 0 means none.
	Marker int `json:"marker" toml:"marker"`
	// Now is the wall-clock time the layout is computed for.
	Now     time.Time `json:"now" toml:"now"`
	Editing bool      `json:"editing" toml:"editing"`
	// HiddenSections collapses hidden sections entirely instead of showing
	// a "not available" placeholder.
	HiddenSections bool `json:"hiddensections" toml:"hiddensections"`
	// MultiPage shows one section per page with only summaries on the main page.
	MultiPage bool `json:"multipage" toml:"multipage"`
}

// EndDate is the end of the last week: StartDate + N weeks.
func (c Course) EndDate() time.Time {
	return c.StartDate.Add(time.Duration(c.NumSections) * Week)
}

// ValidMarker reports whether the marker names a content section.
func (c Course) ValidMarker() bool {
	return c.Marker >= 1 && c.Marker <= c.NumSections
}

// SetMarker applies an instructor's request to mark section n as current.
// The request is ignored unless the caller holds the capability and n is
// non-negative; 0 clears the marker. It reports whether the marker changed.
func (c *Course) SetMarker(n int, canSetCurrent bool) bool {
	if n < 0 || !canSetCurrent || c.Marker == n {
		return false
	}
	c.Marker = n
	return true
}
