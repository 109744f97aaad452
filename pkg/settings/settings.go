// Package settings persists per-course layout settings and performs the
// write-back of corrected values.
//
// The layout engine clamps settings without side effects. [Reconcile] is
// the explicit collaborator step that stores a corrected column count when
// the loaded one is out of range and the caller may update the course.
//
// Backends:
//   - [MemoryStore]: process-local
//   - [FileStore]: one TOML file per course, for the CLI
//   - [RedisStore]: JSON values in redis
//   - [MongoStore]: documents in the format_topcoll_settings collection
package settings

import (
	"context"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
	"github.com/uofr/moodle-format-topcoll/pkg/observability"
)

// Store persists course settings.
type Store interface {
	// Get returns the stored settings and whether any exist.
	Get(ctx context.Context, courseID string) (course.Settings, bool, error)
	// Put stores settings as given.
	Put(ctx context.Context, courseID string, s course.Settings) error
	Close() error
}

// Load returns the stored settings for courseID, or fallback when nothing
// is stored. A nil store always yields fallback.
func Load(ctx context.Context, store Store, courseID string, fallback course.Settings) (course.Settings, bool, error) {
	if store == nil {
		return fallback, false, nil
	}
	s, ok, err := store.Get(ctx, courseID)
	if err != nil {
		observability.Store().OnStoreError(ctx, "settings", "get", err)
		if errors.GetCode(err) != "" {
			return fallback, false, err
		}
		return fallback, false, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "load settings for course %s", courseID)
	}
	if !ok {
		return fallback, false, nil
	}
	return s, true, nil
}

// Reconcile clamps s and, when the column count was out of range and
// canUpdate is set, writes the corrected column count back to the store.
// Other stored values are left as loaded. It returns the clamped settings
// and whether a write-back happened. Without the capability the clamped
// value is still returned but nothing is persisted.
func Reconcile(ctx context.Context, store Store, courseID string, s course.Settings, canUpdate bool) (course.Settings, bool, error) {
	clamped := s.Clamp()
	if !s.NeedsWriteBack() || !canUpdate || store == nil {
		return clamped, false, nil
	}
	fixed := s
	fixed.Columns = clamped.Columns
	err := store.Put(ctx, courseID, fixed)
	observability.Store().OnWriteBack(ctx, courseID, err)
	if err != nil {
		return clamped, false, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write back settings for course %s", courseID)
	}
	return clamped, true, nil
}
