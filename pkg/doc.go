// Package pkg provides the core libraries for topcoll, a collapsed-topics
// course layout engine.
//
// # Overview
//
// A course is a numbered list of sections. Topcoll decides which of them a
// user sees, in what order, behind which collapsible toggle, and in how many
// columns. The pkg directory is organized into three areas:
//
//  1. [core] - Domain logic (course model, layout plan, navigation, text)
//  2. Persistence - [settings], [togglestate] and [cache] backends
//  3. [pipeline] - Orchestration (settings → layout → selector)
//
// # Architecture
//
// The typical data flow through topcoll:
//
//	Course file / HTTP request
//	         ↓
//	    [io] package (decode course, settings, sections)
//	         ↓
//	    [settings] package (stored settings, clamped and written back)
//	         ↓
//	    [core/layout] package (order → visibility → columns)
//	         ↓
//	    Plan JSON / terminal columns
//
// # Quick Start
//
// Compute the layout for a course file:
//
//	import (
//	    "context"
//	    "github.com/uofr/moodle-format-topcoll/pkg/io"
//	    "github.com/uofr/moodle-format-topcoll/pkg/pipeline"
//	    "github.com/uofr/moodle-format-topcoll/pkg/settings"
//	)
//
//	cf, _ := io.Import("course.toml")
//	runner := pipeline.NewRunner(nil, nil, settings.NewMemoryStore(), nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Course:   cf.Course,
//	    Sections: cf.Sections,
//	    Settings: &cf.Settings,
//	})
//	fmt.Println(result.Plan.Columns) // [[1 2] [3 4]]
//
// Without a runner, [core/layout] computes a plan directly:
//
//	plan := layout.Build(cf.SectionMap(), cf.Settings, cf.Course)
//
// # Main Packages
//
// [core/course] - Course, section and settings types. Settings are clamped
// into range rather than rejected.
//
// [core/layout] - The layout engine: traversal order per structure, the
// visibility rules for each visit, the column partition and the current
// section.
//
// [core/navigation] - Previous/next links and the jump menu shown on a
// single-section page.
//
// [settings] - Per-course settings stores (memory, file, Redis, MongoDB).
//
// [togglestate] - Per-user open/closed toggle flags (memory, file, Redis).
//
// [cache] - Plan cache with file, Redis and no-op backends.
//
// [observability] - Hooks for plan, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/core/layout/...   # Specific package
//	go test -run Example ./pkg/...  # Examples only
//
// [core]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/core
// [core/course]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/core/course
// [core/layout]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/core/layout
// [core/navigation]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/core/navigation
// [io]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/io
// [settings]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/settings
// [togglestate]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/togglestate
// [cache]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/uofr/moodle-format-topcoll/pkg/observability
package pkg
