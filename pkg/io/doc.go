// Package io reads and writes course fixtures: a course context, its layout
// settings and its sections in one JSON or TOML document.
//
// # JSON Format
//
//	{
//	  "course": {"id": "101", "numsections": 4, "startdate": "2025-09-01T00:00:00Z", "marker": 2},
//	  "settings": {"structure": "week", "columns": 2},
//	  "sections": [
//	    {"section": 0, "summary": "Welcome"},
//	    {"section": 1, "name": "Getting started"},
//	    {"section": 3, "uservisible": false}
//	  ]
//	}
//
// The TOML form uses the same keys with [course], [settings] and
// [[sections]] tables.
//
// # Defaults
//
// Fixtures are written by hand, so omitted values take the host's defaults:
//   - settings missing entirely or in part take [course.DefaultSettings]
//   - visible, uservisible and available default to true
//   - sections that are not listed are synthesized as visible sections
//   - numsections defaults to the highest listed section number
//
// The structure may be given by name ("topic", "week", "week-current-first",
// "topic-current-first", "day") or by its numeric code 1-5.
//
// # Validation
//
// Section numbers must be unique and lie in 0..numsections. Settings are
// not clamped here; out-of-range values are kept so the layout pipeline can
// report and write back the correction.
//
// [course.DefaultSettings]: github.com/uofr/moodle-format-topcoll/pkg/core/course.DefaultSettings
package io
