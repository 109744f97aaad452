// Package pipeline runs the layout engine for CLI and API callers.
//
// A request flows through three steps:
//
//  1. Settings: load the stored course settings, falling back to the
//     settings carried by the request
//  2. Reconcile: clamp the settings and write the corrected value back when
//     the caller may update the course
//  3. Plan: build the layout plan and, for single-section pages, the
//     navigation selector, caching the result by its inputs
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Course:   c,
//	    Sections: sections,
//	    Settings: &fixtureSettings,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Plan.Columns)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/uofr/moodle-format-topcoll/pkg/cache"
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/layout"
	"github.com/uofr/moodle-format-topcoll/pkg/core/navigation"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// =============================================================================
// Options - Request Configuration
// =============================================================================

// Options describes one layout request. It supports JSON for API requests.
type Options struct {
	Course   course.Course    `json:"course"`
	Sections []course.Section `json:"sections,omitempty"`

	// Settings are used when the store holds nothing for the course. Nil
	// means the built-in defaults.
	Settings *course.Settings `json:"settings,omitempty"`

	// CanUpdate permits writing corrected settings back to the store.
	CanUpdate bool `json:"can_update,omitempty"`

	// Selector is the section shown on a single-section page. Zero means
	// the main course page, which has no selector.
	Selector int `json:"selector,omitempty"`

	// Refresh bypasses the plan cache for reads.
	Refresh bool `json:"refresh,omitempty"`

	// Marker asks to mark a section as current; 0 clears the marker. It is
	// ignored without CanSetCurrent.
	Marker        *int `json:"marker,omitempty"`
	CanSetCurrent bool `json:"can_set_current,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Clock  func() time.Time `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the computed layout.
	Plan layout.Plan `json:"plan"`

	// Selector is set when Options.Selector named a content section.
	Selector *navigation.Selector `json:"selector,omitempty"`

	// Stored reports whether the settings came from the store.
	Stored bool `json:"stored"`

	// WroteBack reports whether corrected settings were persisted.
	WroteBack bool `json:"wrote_back"`

	// Marker is the course marker after any requested change.
	Marker int `json:"marker"`

	// MarkerControl reports whether the page offers "mark as current".
	MarkerControl bool `json:"marker_control"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains execution statistics.
type Stats struct {
	Sections int           `json:"sections"`
	Shown    int           `json:"shown"`
	Columns  int           `json:"columns"`
	Duration time.Duration `json:"duration"`
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	PlanHit bool `json:"plan_hit"` // Whether the plan came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the request and fills in defaults. It is
// idempotent. Out-of-range layout values are not errors: the engine
// normalizes them. Only identifiers that cross a store boundary are
// validated.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Course.ID != "" {
		if err := errors.ValidateCourseID(o.Course.ID); err != nil {
			return err
		}
	}
	if o.Selector < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "selector must not be negative: %d", o.Selector)
	}
	if o.Course.NumSections < 0 {
		o.Course.NumSections = 0
	}
	if o.Marker != nil {
		o.Course.SetMarker(*o.Marker, o.CanSetCurrent)
	}
	if o.Course.Now.IsZero() {
		clock := o.Clock
		if clock == nil {
			clock = time.Now
		}
		// Minute resolution keeps the plan cache key stable between calls.
		o.Course.Now = clock().Truncate(time.Minute)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// FallbackSettings returns the settings to use when nothing is stored.
func (o *Options) FallbackSettings() course.Settings {
	if o.Settings != nil {
		return *o.Settings
	}
	return course.DefaultSettings()
}

// PlanKeyOpts returns the cache key inputs for a plan built with s.
func (o *Options) PlanKeyOpts(s course.Settings) cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		Sections: o.Sections,
		Settings: s,
		Course:   o.Course,
		Selector: o.Selector,
	}
}
