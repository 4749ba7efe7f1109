package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestModel_CursorNavigation(t *testing.T) {
	m := newModel("Pick one", []string{"a", "b", "c"})

	m = step(t, m, "down", "down")
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m = step(t, m, "down") // clamped at the last choice
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2 after clamping", m.cursor)
	}
	m = step(t, m, "up", "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after clamping", m.cursor)
	}
}

func TestModel_EnterSelects(t *testing.T) {
	m := newModel("Pick one", []string{"a", "b"})
	m = step(t, m, "down", "enter")
	if !m.done || m.aborted || m.cursor != 1 {
		t.Errorf("model = %+v, want done at cursor 1", m)
	}
}

func TestModel_QuickSelect(t *testing.T) {
	m := newModel("Pick one", []string{"a", "b", "c"})
	m = step(t, m, "3")
	if !m.done || m.cursor != 2 {
		t.Errorf("model = %+v, want done at cursor 2", m)
	}

	m = newModel("Pick one", []string{"a"})
	m = step(t, m, "9") // out of range: ignored
	if m.done || m.cursor != 0 {
		t.Errorf("model = %+v, out-of-range quick select should be ignored", m)
	}
}

func TestModel_EscAborts(t *testing.T) {
	m := newModel("Pick one", []string{"a", "b"})
	m = step(t, m, "esc")
	if !m.aborted {
		t.Error("esc should abort the selection")
	}
}

func TestModel_ViewListsChoices(t *testing.T) {
	m := newModel("Which flavor?", []string{"vanilla", "mocha"})
	view := m.View()
	for _, want := range []string{"Which flavor?", "vanilla", "mocha", "1.", "2."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
