package cache

import (
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
)

// PlanKeyOpts holds every input that changes a layout plan.
type PlanKeyOpts struct {
	Sections []course.Section `json:"sections"`
	Settings course.Settings  `json:"settings"`
	Course   course.Course    `json:"course"`
	// Selector is the displayed section when a navigation selector is
	// requested, 0 otherwise.
	Selector int `json:"selector"`
}

// Keyer names cache and store entries.
type Keyer interface {
	// PlanKey names a cached layout plan.
	PlanKey(courseID string, opts PlanKeyOpts) string
	// SettingsKey names a course's stored settings.
	SettingsKey(courseID string) string
	// ToggleKey names a user's toggle state for a course.
	ToggleKey(courseID, userID string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PlanKey hashes the plan inputs: plan:<course>:<sha256>.
func (DefaultKeyer) PlanKey(courseID string, opts PlanKeyOpts) string {
	return hashKey("plan:"+courseID, opts)
}

// SettingsKey returns settings:<course>.
func (DefaultKeyer) SettingsKey(courseID string) string {
	return "settings:" + courseID
}

// ToggleKey returns toggles:<course>:<user>.
func (DefaultKeyer) ToggleKey(courseID, userID string) string {
	return "toggles:" + courseID + ":" + userID
}

var _ Keyer = DefaultKeyer{}
