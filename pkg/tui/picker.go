package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirmer answers yes/no questions. The picker only replaces choice
// selection; confirmations stay on the line prompt.
type Confirmer interface {
	AskConfirm(message string) (bool, error)
}

// Picker satisfies prompt.Provider with a full-screen selection list
// for choices and a delegated line prompt for confirmations.
type Picker struct {
	Confirm Confirmer
}

// AskChoice runs the selection list and returns the chosen label.
// Aborting the picker aborts the whole unbox run.
func (p *Picker) AskChoice(message string, choices []string) (string, error) {
	final, err := tea.NewProgram(newModel(message, choices), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	m := final.(model)
	if m.aborted {
		return "", fmt.Errorf("selection aborted")
	}
	return choices[m.cursor], nil
}

// AskConfirm delegates to the line-based provider.
func (p *Picker) AskConfirm(message string) (bool, error) {
	return p.Confirm.AskConfirm(message)
}

type model struct {
	message string
	choices []string
	cursor  int
	done    bool
	aborted bool
}

func newModel(message string, choices []string) model {
	return model{message: message, choices: choices}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(m.choices) {
			m.cursor = idx
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.message))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		prefix := "  "
		line := fmt.Sprintf("%s %s", numStyle.Render(fmt.Sprintf("%d.", i+1)), choice)
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑↓ select · Enter choose · 1-9 quick select · Esc abort"))
	return b.String()
}
