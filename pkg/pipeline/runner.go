package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/uofr/moodle-format-topcoll/pkg/cache"
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/layout"
	"github.com/uofr/moodle-format-topcoll/pkg/core/navigation"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
	"github.com/uofr/moodle-format-topcoll/pkg/observability"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
)

// Runner encapsulates plan computation with caching and settings
// persistence. Both CLI and API use it.
//
// The Runner keeps no per-request state, so multiple goroutines can share
// one Runner with different options.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Settings settings.Store
	Logger   *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// A nil store means request settings are always used and never persisted.
func NewRunner(c cache.Cache, keyer cache.Keyer, store settings.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Settings: store,
		Logger:   logger,
	}
}

// Output is the plan and optional selector, the value stored under a plan
// key.
type Output struct {
	Plan     layout.Plan          `json:"plan"`
	Selector *navigation.Selector `json:"selector,omitempty"`
}

// Execute resolves the course settings and computes the plan.
//
// Store failures do not fail the request: the layout falls back to the
// request settings and the failure is logged. Invalid identifiers do.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	start := time.Now()
	courseID := opts.Course.ID

	observability.Layout().OnPlanStart(ctx, courseID, opts.Course.NumSections)

	result := &Result{}
	s, stored, err := r.ResolveSettings(ctx, opts)
	if err != nil {
		observability.Layout().OnPlanComplete(ctx, courseID, 0, time.Since(start), err)
		return nil, err
	}
	result.Stored = stored

	// Request fallbacks were never persisted, so there is nothing to correct.
	if courseID != "" && stored {
		_, wrote, err := settings.Reconcile(ctx, r.Settings, courseID, s, opts.CanUpdate)
		if err != nil {
			opts.Logger.Warn("settings write-back failed", "course", courseID, "error", err)
		}
		result.WroteBack = wrote
		if wrote {
			opts.Logger.Info("corrected settings written back", "course", courseID)
		}
	}

	cp, hit, err := r.PlanWithCacheInfo(ctx, opts, s)
	if err != nil {
		observability.Layout().OnPlanComplete(ctx, courseID, 0, time.Since(start), err)
		return nil, err
	}
	result.Plan = cp.Plan
	result.Selector = cp.Selector
	result.Marker = opts.Course.Marker
	result.MarkerControl = layout.MarkerControl(cp.Plan.Settings, opts.Course, opts.CanSetCurrent)
	result.CacheInfo.PlanHit = hit
	result.Stats = Stats{
		Sections: opts.Course.NumSections,
		Shown:    len(cp.Plan.Shown()),
		Columns:  len(cp.Plan.Columns),
		Duration: time.Since(start),
	}

	observability.Layout().OnPlanComplete(ctx, courseID, result.Stats.Columns, result.Stats.Duration, nil)
	opts.Logger.Info("plan computed",
		"course", courseID,
		"structure", cp.Plan.Structure,
		"shown", result.Stats.Shown,
		"columns", result.Stats.Columns,
		"cached", hit,
		"duration", result.Stats.Duration)

	return result, nil
}

// ResolveSettings loads the stored settings for the request's course, or
// the request fallback when none are stored or the store is unreachable.
// It reports whether the settings came from the store.
func (r *Runner) ResolveSettings(ctx context.Context, opts Options) (course.Settings, bool, error) {
	fallback := opts.FallbackSettings()
	if opts.Course.ID == "" || r.Settings == nil {
		return fallback, false, nil
	}
	s, stored, err := settings.Load(ctx, r.Settings, opts.Course.ID, fallback)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeStoreUnavailable) {
			return course.Settings{}, false, err
		}
		r.logger(opts).Warn("settings store unavailable, using request settings",
			"course", opts.Course.ID, "error", err)
		return fallback, false, nil
	}
	return s, stored, nil
}

// PlanWithCacheInfo builds the plan for the given settings with caching and
// reports whether it came from the cache.
func (r *Runner) PlanWithCacheInfo(ctx context.Context, opts Options, s course.Settings) (Output, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Output{}, false, err
	}
	cacheKey := r.Keyer.PlanKey(opts.Course.ID, opts.PlanKeyOpts(s))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cp Output
			if err := json.Unmarshal(data, &cp); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return cp, true, nil
			}
			// A corrupt entry is recomputed and overwritten.
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	cp := BuildPlan(opts, s)

	if data, err := json.Marshal(cp); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan); err != nil {
			r.logger(opts).Debug("plan cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return cp, false, nil
}

// Plan is a convenience wrapper that calls PlanWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Plan(ctx context.Context, opts Options, s course.Settings) (layout.Plan, error) {
	cp, _, err := r.PlanWithCacheInfo(ctx, opts, s)
	return cp.Plan, err
}

// BuildPlan computes the plan and selector without caching.
func BuildPlan(opts Options, s course.Settings) Output {
	sections := course.NewSectionMap(opts.Sections)
	cp := Output{Plan: layout.Build(sections, s, opts.Course)}
	if opts.Selector > 0 && opts.Selector <= opts.Course.NumSections {
		sel := navigation.BuildSelector(sections, cp.Plan.Settings, opts.Course, opts.Selector)
		cp.Selector = &sel
	}
	return cp
}

// Close releases resources held by the runner: the cache and the settings
// store.
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Settings != nil {
		if err := r.Settings.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
