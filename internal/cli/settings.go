package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/settings"
)

// settingsCommand manages stored course settings.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change stored course settings",
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())

	return cmd
}

// settingsShowCommand creates the "settings show" subcommand.
func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [course-id]",
		Short: "Print the settings stored for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newSettingsStore(ctx)
			if err != nil {
				return fmt.Errorf("open settings store: %w", err)
			}
			defer store.Close()

			s, stored, err := settings.Load(ctx, store, args[0], c.Config.Defaults)
			if err != nil {
				return err
			}
			printSettings(args[0], s, stored)
			return nil
		},
	}
}

// settingsSetCommand creates the "settings set" subcommand.
func (c *CLI) settingsSetCommand() *cobra.Command {
	var (
		structure  string
		columns    int
		element    int
		foreground string
		background string
		hover      string
	)

	cmd := &cobra.Command{
		Use:   "set [course-id]",
		Short: "Change the settings stored for a course",
		Long: `Change the settings stored for a course.

Only the flags given are changed. Out-of-range values are corrected before
they are stored, the same way the layout corrects them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newSettingsStore(ctx)
			if err != nil {
				return fmt.Errorf("open settings store: %w", err)
			}
			defer store.Close()

			s, _, err := settings.Load(ctx, store, args[0], c.Config.Defaults)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("structure") {
				if s.Structure, err = course.ParseStructure(structure); err != nil {
					return err
				}
			}
			if flags.Changed("columns") {
				s.Columns = columns
			}
			if flags.Changed("element") {
				s.Element = course.Element(element)
			}
			if flags.Changed("foreground") {
				s.Colours.Foreground = foreground
			}
			if flags.Changed("background") {
				s.Colours.Background = background
			}
			if flags.Changed("background-hover") {
				s.Colours.BackgroundHover = hover
			}

			return c.storeSettings(ctx, store, args[0], s)
		},
	}

	cmd.Flags().StringVar(&structure, "structure", "", "structure: topic, week, week-current-first, topic-current-first, day")
	cmd.Flags().IntVar(&columns, "columns", course.DefaultColumns, "number of columns (1-4)")
	cmd.Flags().IntVar(&element, "element", int(course.DefaultElement), "toggle decoration element (1-6)")
	cmd.Flags().StringVar(&foreground, "foreground", course.DefaultForeground, "toggle foreground colour (hex)")
	cmd.Flags().StringVar(&background, "background", course.DefaultBackground, "toggle background colour (hex)")
	cmd.Flags().StringVar(&hover, "background-hover", course.DefaultBackgroundHover, "toggle hover colour (hex)")

	return cmd
}

func (c *CLI) storeSettings(ctx context.Context, store settings.Store, courseID string, s course.Settings) error {
	clamped := s.Clamp()
	if err := store.Put(ctx, courseID, clamped); err != nil {
		return fmt.Errorf("store settings: %w", err)
	}
	c.Logger.Debug("stored settings", "course", courseID, "backend", c.Config.Store.Backend)
	if clamped != s {
		printWarning("Some values were out of range and have been corrected")
	}
	printSuccess("Settings stored for course %s", courseID)
	printSettings(courseID, clamped, true)
	return nil
}
