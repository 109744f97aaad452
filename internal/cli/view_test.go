package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/uofr/moodle-format-topcoll/pkg/togglestate"
)

func press(t *testing.T, m ToggleModel, keys ...tea.KeyMsg) ToggleModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(ToggleModel)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleModelNavigation(t *testing.T) {
	sections, c := testCourse()
	m := NewToggleModel(testPlan(sections, c), sections, c, togglestate.State(""))

	if m.Toggles.Len() != 4 {
		t.Fatalf("Toggles resized to %d, want 4", m.Toggles.Len())
	}
	if got := m.Selected(); got != 1 {
		t.Fatalf("Selected() = %d, want 1", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.Selected(); got != 2 {
		t.Errorf("after down Selected() = %d, want 2", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Selected(); got != 3 {
		t.Errorf("after right Selected() = %d, want 3", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Selected(); got != 3 {
		t.Errorf("right past the last column moved to %d", got)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.Selected(); got != 1 {
		t.Errorf("Selected() = %d, want 1", got)
	}
	if m.Dirty {
		t.Error("navigation should not mark the model dirty")
	}
}

func TestToggleModelToggles(t *testing.T) {
	sections, c := testCourse()
	m := NewToggleModel(testPlan(sections, c), sections, c, togglestate.New(4))

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Toggles.IsOpen(2) || m.Toggles.IsOpen(1) || !m.Dirty {
		t.Errorf("enter on section 2: toggles = %q dirty = %v", m.Toggles, m.Dirty)
	}

	m = press(t, m, runes("a"))
	if got := len(m.Toggles.OpenSections()); got != 4 {
		t.Errorf("open all: %d open, want 4", got)
	}

	m = press(t, m, runes("c"))
	if got := len(m.Toggles.OpenSections()); got != 0 {
		t.Errorf("close all: %d open, want 0", got)
	}

	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestToggleModelView(t *testing.T) {
	sections, c := testCourse()
	m := NewToggleModel(testPlan(sections, c), sections, c, togglestate.New(4).Open(3))
	view := m.View()
	for _, want := range []string{"topic layout", "[1/4]", "1 open"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
