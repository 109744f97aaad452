// Package course defines the request-scoped value types consumed by the
// section layout engine: sections, layout settings and the course context.
//
// # Sections
//
// A course has a general section (number 0) followed by content sections
// 1..N. Section 0 never takes part in ordering or column placement; it is
// shown above the columns when it has content or the course is being edited.
// A [SectionMap] holds the materialized sections and synthesizes a default,
// visible section for any number the host did not supply.
//
// # Settings
//
// [Settings] selects the [Structure] (topic, week, current-first and day
// modes), the number of display columns and the decoration [Element]. The
// pure [Settings.Clamp] normalizes out-of-range values; persisting a
// corrected value is the caller's responsibility:
//
//	clamped := s.Clamp()
//	if clamped != s {
//	    store.Put(ctx, courseID, clamped)
//	}
//
// # Course context
//
// [Course] carries everything time- and user-dependent: the number of
// sections, the start date, the instructor's marker, the wall-clock time and
// whether the course is being edited. Nothing in this package reads ambient
// state; every value is passed explicitly.
package course
