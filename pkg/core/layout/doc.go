// Package layout is the section layout engine for collapsed-topics course
// pages.
//
// # Overview
//
// Given a course's materialized sections, its [course.Settings] and a
// [course.Course] context, the engine decides which content sections are
// shown, in what order, how the shown sections are spread across display
// columns and which section is current. Every function is pure: no I/O, no
// shared state and no errors. Out-of-range input is normalized, never
// rejected.
//
// # Pipeline
//
// The engine is four small steps composed by [Build]:
//
//  1. [ComputeOrder] produces the traversal as a list of [Visit] values.
//     Current-first structures yield two passes: [PassCurrent] followed by
//     [PassRest], each generated independently.
//  2. [Resolve] (or the boolean shortcut [IsVisible]) decides per visit
//     whether the section is shown and, when it is not, why and whether a
//     "not available" placeholder is rendered.
//  3. [Partition] distributes the shown sections across columns using the
//     moving-breakpoint rule.
//  4. [CurrentSection] picks the highlighted section.
//
// The result is a [Plan]:
//
//	plan := layout.Build(sections, settings, c)
//	for i, col := range plan.Columns {
//	    fmt.Println("column", i+1, col)
//	}
//
// # Settings correction
//
// [Build] clamps the settings before use and reports [Plan.Corrected] when
// the stored value was out of range. Persisting the corrected value is left
// to the caller.
package layout
