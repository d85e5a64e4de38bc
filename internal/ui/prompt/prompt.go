// Package prompt reads one free-text answer through a small Bubble Tea
// program.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drill/internal/ui/components"
	"github.com/abhisek/drill/internal/ui/layout"
	"github.com/abhisek/drill/internal/ui/theme"
)

// ErrCancelled is returned when the learner presses Esc or Ctrl+C.
var ErrCancelled = errors.New("prompt cancelled")

// Request describes what to show above the input.
type Request struct {
	Status      string // right side of the header, e.g. "Round 2 · 3/7"
	Label       string // "Term" or "Definition"
	Shown       string
	Placeholder string
}

// Model is the Bubble Tea model behind Ask.
type Model struct {
	req       Request
	input     components.TextInput
	width     int
	submitted bool
	cancelled bool
}

// New returns a Model for req.
func New(req Request) Model {
	return Model{
		req:   req,
		input: components.NewTextInput(req.Placeholder, components.DefaultCharLimit),
		width: layout.DefaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 2*layout.DefaultWidth)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m Model) render() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(layout.RenderHeader(m.req.Status, m.width))
	b.WriteString("\n")
	card := theme.Hint.Render(m.req.Label) + "\n" + theme.Shown.Render(m.req.Shown)
	b.WriteString(layout.RenderCard(card, m.width))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(layout.RenderFooter([]layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Leave drill"},
	}))
	return b.String()
}

// Value returns the typed answer.
func (m Model) Value() string {
	return m.input.Value()
}

// Cancelled reports whether the learner left without submitting.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Ask runs the prompt on in/out and returns the submitted answer.
func Ask(ctx context.Context, in io.Reader, out io.Writer, req Request) (string, error) {
	p := tea.NewProgram(New(req),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return "", fmt.Errorf("run prompt: unexpected model %T", final)
	}
	if m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}
