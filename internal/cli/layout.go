package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	courseio "github.com/uofr/moodle-format-topcoll/pkg/io"
	"github.com/uofr/moodle-format-topcoll/pkg/pipeline"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

// layoutFlags are the course overrides shared by layout and view.
type layoutFlags struct {
	now       string
	editing   bool
	columns   int
	structure string
	element   int
	marker    int
	useStore  bool
	canUpdate bool
	noCache   bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.now, "now", "", "compute the layout at this time (RFC3339, default: now)")
	cmd.Flags().BoolVar(&f.editing, "editing", false, "lay out the course as an editing instructor sees it")
	cmd.Flags().IntVar(&f.columns, "columns", 0, "override the number of columns (1-4)")
	cmd.Flags().StringVar(&f.structure, "structure", "", "override the structure: topic, week, week-current-first, topic-current-first, day")
	cmd.Flags().IntVar(&f.element, "element", 0, "override the toggle decoration element (1-6)")
	cmd.Flags().IntVar(&f.marker, "marker", 0, "mark this section as current (0 clears the marker)")
	cmd.Flags().BoolVar(&f.useStore, "store", false, "read settings from the configured settings store")
	cmd.Flags().BoolVar(&f.canUpdate, "can-update", false, "write corrected settings back to the store")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options builds pipeline options from a course file and the overrides.
func (f *layoutFlags) options(cmd *cobra.Command, cf *courseio.CourseFile) (pipeline.Options, error) {
	s := cf.Settings
	if cmd.Flags().Changed("columns") {
		s.Columns = f.columns
	}
	if cmd.Flags().Changed("element") {
		s.Element = course.Element(f.element)
	}
	if f.structure != "" {
		structure, err := course.ParseStructure(f.structure)
		if err != nil {
			return pipeline.Options{}, err
		}
		s.Structure = structure
	}

	c := cf.Course
	if f.now != "" {
		now, err := time.Parse(time.RFC3339, f.now)
		if err != nil {
			return pipeline.Options{}, fmt.Errorf("parse --now: %w", err)
		}
		c.Now = now
	}
	if cmd.Flags().Changed("editing") {
		c.Editing = f.editing
	}

	opts := pipeline.Options{
		Course:    c,
		Sections:  cf.Sections,
		Settings:  &s,
		CanUpdate: f.canUpdate,
	}
	if cmd.Flags().Changed("marker") {
		marker := f.marker
		opts.Marker = &marker
		opts.CanSetCurrent = true
	}
	return opts, nil
}

// layoutRunner opens the settings store when requested and builds a runner.
func (c *CLI) layoutRunner(ctx context.Context, f *layoutFlags) (*pipeline.Runner, error) {
	var store settings.Store
	if f.useStore {
		var err error
		if store, err = c.newSettingsStore(ctx); err != nil {
			return nil, fmt.Errorf("open settings store: %w", err)
		}
	}
	runner, err := c.newRunner(ctx, f.noCache, store)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	return runner, nil
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    layoutFlags
		jsonOut  bool
		output   string
		selector int
		user     string
		width    int
	)

	cmd := &cobra.Command{
		Use:   "layout [course.json|course.toml]",
		Short: "Compute the section layout of a course",
		Long: `Compute the section layout of a course.

The layout command reads a course file (course context, settings and
sections) and prints which sections show, in which order and in which
column, with the current section highlighted.

Use --json for the machine-readable plan. Results are cached locally for
faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := courseio.Import(args[0])
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, cf)
			if err != nil {
				return err
			}
			opts.Selector = selector
			return c.runLayout(cmd.Context(), cf, opts, &flags, layoutOutput{
				json:   jsonOut,
				path:   output,
				user:   user,
				width:  width,
				source: args[0],
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the plan as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON plan to a file (implies --json)")
	cmd.Flags().IntVar(&selector, "section", 0, "also build the navigation selector for this section")
	cmd.Flags().StringVar(&user, "user", "", "show the toggles this user has open")
	cmd.Flags().IntVar(&width, "width", defaultViewWidth, "terminal width for the column view")

	return cmd
}

type layoutOutput struct {
	json   bool
	path   string
	user   string
	width  int
	source string
}

// runLayout computes the plan and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, cf *courseio.CourseFile, opts pipeline.Options, flags *layoutFlags, out layoutOutput) error {
	runner, err := c.layoutRunner(ctx, flags)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("laid out sections",
		"sections", result.Stats.Sections,
		"shown", result.Stats.Shown,
		"columns", result.Stats.Columns)

	if out.json || out.path != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode plan: %w", err)
		}
		if out.path == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(out.path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", out.path, err)
		}
		printSuccess("Plan written")
		printFile(out.path)
		return nil
	}

	toggles := togglestate.New(opts.Course.NumSections)
	if out.user != "" {
		store, err := c.newToggleStore(ctx)
		if err != nil {
			return fmt.Errorf("open toggle store: %w", err)
		}
		defer store.Close()
		if toggles, err = togglestate.Load(ctx, store, opts.Course.ID, out.user, opts.Course.NumSections); err != nil {
			return fmt.Errorf("load toggles: %w", err)
		}
	}

	view := planView{
		Plan:     result.Plan,
		Sections: cf.SectionMap(),
		Course:   opts.Course,
		Toggles:  toggles,
		Width:    out.width,
	}
	fmt.Println(view.Render())
	printNewline()
	printPlanStats(result)
	if result.Plan.Corrected {
		printWarning("Settings were out of range and have been corrected")
	}
	if result.Selector != nil {
		printSelector(*result.Selector)
	}
	printNewline()
	printNextStep("Browse interactively", appName+" view "+out.source)
	return nil
}
