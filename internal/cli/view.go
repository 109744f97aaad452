package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/core/layout"
	courseio "github.com/uofr/moodle-format-topcoll/pkg/io"
	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ToggleModel - Interactive section toggles
// =============================================================================

// ToggleModel is the bubbletea model for browsing a course layout and
// opening or closing section toggles.
type ToggleModel struct {
	Plan     layout.Plan
	Sections course.SectionMap
	Course   course.Course
	Toggles  togglestate.State

	// order is the shown sections in display order.
	order  []int
	column map[int]int
	Cursor int
	Width  int
	Dirty  bool
}

// NewToggleModel creates a toggle model positioned on the current section,
// or on the first shown section when none is current.
func NewToggleModel(plan layout.Plan, sections course.SectionMap, c course.Course, toggles togglestate.State) ToggleModel {
	m := ToggleModel{
		Plan:     plan,
		Sections: sections,
		Course:   c,
		Toggles:  toggles.Resize(c.NumSections),
		order:    plan.Shown(),
		column:   layout.ColumnOf(plan.Columns),
		Width:    defaultViewWidth,
	}
	for i, n := range m.order {
		if n == plan.Current {
			m.Cursor = i
		}
	}
	return m
}

// Selected returns the section under the cursor, 0 when nothing is shown.
func (m ToggleModel) Selected() int {
	if len(m.order) == 0 {
		return 0
	}
	return m.order[m.Cursor]
}

func (m ToggleModel) Init() tea.Cmd {
	return nil
}

func (m ToggleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.order)-1 {
				m.Cursor++
			}
		case "left", "h":
			m.moveColumn(-1)
		case "right", "l":
			m.moveColumn(1)
		case " ", "enter":
			if n := m.Selected(); n > 0 {
				m.Toggles = m.Toggles.Toggle(n)
				m.Dirty = true
			}
		case "a":
			m.Toggles = m.Toggles.OpenAll()
			m.Dirty = true
		case "c":
			m.Toggles = m.Toggles.CloseAll()
			m.Dirty = true
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

// moveColumn puts the cursor on the first section of the adjacent column.
func (m *ToggleModel) moveColumn(delta int) {
	if len(m.order) == 0 {
		return
	}
	target := m.column[m.Selected()] + delta
	if target < 0 || target >= len(m.Plan.Columns) {
		return
	}
	first := m.Plan.Columns[target][0]
	for i, n := range m.order {
		if n == first {
			m.Cursor = i
			return
		}
	}
}

func (m ToggleModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s layout", m.Plan.Structure)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  ←/→ column  space toggle  a open all  c close all  q quit"))
	b.WriteString("\n\n")

	view := planView{
		Plan:     m.Plan,
		Sections: m.Sections,
		Course:   m.Course,
		Toggles:  m.Toggles,
		Cursor:   m.Selected(),
		Width:    m.Width,
	}
	b.WriteString(view.Render())
	b.WriteString("\n\n")

	open := len(m.Toggles.OpenSections())
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d open", m.Cursor+1, len(m.order), open)))
	return b.String()
}

// =============================================================================
// view command
// =============================================================================

// viewCommand creates the interactive toggle viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags layoutFlags
		user  string
	)

	cmd := &cobra.Command{
		Use:   "view [course.json|course.toml]",
		Short: "Browse a course layout and open or close toggles",
		Long: `Browse a course layout interactively.

Sections are drawn in their columns. Space or enter opens and closes the
toggle under the cursor, 'a' opens all and 'c' closes all. The toggle
state is saved per user when the viewer exits.`,
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
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.layoutRunner(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			defer runner.Close()
			result, err := runner.Execute(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("compute layout: %w", err)
			}
			return c.runView(cmd.Context(), cf, opts.Course, result.Plan, user)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&user, "user", "cli", "user whose toggle state is loaded and saved")
	return cmd
}

func (c *CLI) runView(ctx context.Context, cf *courseio.CourseFile, crs course.Course, plan layout.Plan, user string) error {
	courseID := crs.ID
	if courseID == "" {
		courseID = "local"
	}

	store, err := c.newToggleStore(ctx)
	if err != nil {
		return fmt.Errorf("open toggle store: %w", err)
	}
	defer store.Close()

	toggles, err := togglestate.Load(ctx, store, courseID, user, crs.NumSections)
	if err != nil {
		return fmt.Errorf("load toggles: %w", err)
	}

	model := NewToggleModel(plan, cf.SectionMap(), crs, toggles)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	m, ok := final.(ToggleModel)
	if !ok || !m.Dirty {
		return nil
	}
	if err := store.Set(ctx, courseID, user, m.Toggles); err != nil {
		return fmt.Errorf("save toggles: %w", err)
	}
	printSuccess("Saved toggle state for %s", user)
	printDetail("%d of %d sections open", len(m.Toggles.OpenSections()), m.Toggles.Len())
	return nil
}
