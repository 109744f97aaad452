package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

// togglesCommand manages stored per-user toggle states.
func (c *CLI) togglesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggles",
		Short: "Inspect or change a user's open section toggles",
	}

	cmd.AddCommand(c.togglesShowCommand())
	cmd.AddCommand(c.togglesSetCommand())
	cmd.AddCommand(c.togglesChangeCommand("open", "Open sections", togglestate.State.Open))
	cmd.AddCommand(c.togglesChangeCommand("close", "Close sections", togglestate.State.Close))
	cmd.AddCommand(c.togglesResetCommand())

	return cmd
}

// withToggleStore opens the toggle store for the duration of fn.
func (c *CLI) withToggleStore(ctx context.Context, fn func(togglestate.Store) error) error {
	store, err := c.newToggleStore(ctx)
	if err != nil {
		return fmt.Errorf("open toggle store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) togglesShowCommand() *cobra.Command {
	var sections int

	cmd := &cobra.Command{
		Use:   "show [course-id] [user-id]",
		Short: "Print a user's toggle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withToggleStore(cmd.Context(), func(store togglestate.Store) error {
				st, ok, err := store.Get(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if !ok {
					printInfo("No toggle state stored; every section starts closed")
				}
				if cmd.Flags().Changed("sections") {
					st = st.Resize(sections)
				}
				fmt.Println(renderToggleTable(st))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&sections, "sections", 0, "resize the state to this many sections")
	return cmd
}

func (c *CLI) togglesSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [course-id] [user-id] [state]",
		Short: "Store a raw toggle state such as 0110",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := togglestate.State(args[2])
			if err := st.Validate(); err != nil {
				return err
			}
			return c.withToggleStore(cmd.Context(), func(store togglestate.Store) error {
				if err := store.Set(cmd.Context(), args[0], args[1], st); err != nil {
					return err
				}
				printSuccess("Stored %s for %s", st, args[1])
				return nil
			})
		},
	}
}

// togglesChangeCommand applies op to each section given on the command line.
func (c *CLI) togglesChangeCommand(use, short string, op func(togglestate.State, int) togglestate.State) *cobra.Command {
	var sections int

	cmd := &cobra.Command{
		Use:   use + " [course-id] [user-id] [section...]",
		Short: short,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := parseSections(args[2:])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withToggleStore(ctx, func(store togglestate.Store) error {
				n := sections
				for _, s := range numbers {
					if s > n {
						n = s
					}
				}
				st, err := togglestate.Load(ctx, store, args[0], args[1], n)
				if err != nil {
					return err
				}
				for _, s := range numbers {
					st = op(st, s)
				}
				if err := store.Set(ctx, args[0], args[1], st); err != nil {
					return err
				}
				printSuccess("%s: %s", args[1], st)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&sections, "sections", 0, "number of sections in the course")
	return cmd
}

func (c *CLI) togglesResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [course-id] [user-id]",
		Short: "Forget a user's toggle state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withToggleStore(cmd.Context(), func(store togglestate.Store) error {
				if err := store.Delete(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				printSuccess("Toggle state reset for %s", args[1])
				return nil
			})
		},
	}
}

func parseSections(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid section %q: must be a positive number", a)
		}
		out = append(out, n)
	}
	return out, nil
}

// renderToggleTable draws one row per section with its open state.
func renderToggleTable(st togglestate.State) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, st.Len())
	for n := 1; n <= st.Len(); n++ {
		state := iconClosed + " closed"
		if st.IsOpen(n) {
			state = iconOpen + " open"
		}
		rows = append(rows, []string{strconv.Itoa(n), state})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Toggle").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if row < len(rows) && st.IsOpen(row+1) {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})
	return t.Render()
}
