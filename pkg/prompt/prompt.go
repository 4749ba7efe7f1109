// Package prompt resolves the interactive decisions the unbox pipeline
// needs: picking a recipe variant and confirming overwrites.
package prompt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Provider answers a single decision at a time. AskChoice must return
// a member of choices; both methods fail when the user aborts, and
// that failure ends the whole unbox run.
type Provider interface {
	AskChoice(message string, choices []string) (string, error)
	AskConfirm(message string) (bool, error)
}

// Interactive prompts on the terminal via readline.
type Interactive struct {
	rl *readline.Instance
}

// NewInteractive creates a terminal-backed provider.
func NewInteractive() (*Interactive, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &Interactive{rl: rl}, nil
}

// Close releases the terminal.
func (p *Interactive) Close() error { return p.rl.Close() }

// AskChoice prints a numbered option list and reads until the answer
// is a list number or an exact option label.
func (p *Interactive) AskChoice(message string, choices []string) (string, error) {
	fmt.Println(message)
	for i, c := range choices {
		fmt.Printf("  %d. %s\n", i+1, c)
	}

	p.rl.SetPrompt("choice> ")
	for {
		line, err := p.rl.Readline()
		if err != nil {
			return "", fmt.Errorf("read choice: %w", err)
		}
		line = strings.TrimSpace(line)
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		if slices.Contains(choices, line) {
			return line, nil
		}
		fmt.Printf("Enter 1-%d or one of: %s\n", len(choices), strings.Join(choices, ", "))
	}
}

// AskConfirm asks a yes/no question, defaulting to no.
func (p *Interactive) AskConfirm(message string) (bool, error) {
	p.rl.SetPrompt(message + " [y/N] ")
	line, err := p.rl.Readline()
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Scripted replays queued answers. It backs tests and keeps prompting
// out of non-interactive code paths; running out of answers is an
// error, never a silent default.
type Scripted struct {
	Choices  []string
	Confirms []bool

	// ChoicesAsked counts AskChoice calls, answered or not.
	ChoicesAsked int
}

func (s *Scripted) AskChoice(message string, choices []string) (string, error) {
	s.ChoicesAsked++
	if len(s.Choices) == 0 {
		return "", fmt.Errorf("no scripted answer for choice %q", message)
	}
	answer := s.Choices[0]
	s.Choices = s.Choices[1:]
	return answer, nil
}

func (s *Scripted) AskConfirm(message string) (bool, error) {
	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("no scripted answer for confirmation %q", message)
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}
