package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/abhisek/drill/internal/session"
	"github.com/abhisek/drill/internal/store"
	"github.com/abhisek/drill/internal/ui/prompt"
	"github.com/abhisek/drill/internal/ui/theme"
)

var _ session.Presenter = (*Console)(nil)

// SelectSet lists sets and reads a 1-based choice.
func (c *Console) SelectSet(ctx context.Context, sets []store.Set) (int64, error) {
	c.Println("Available sets:")
	for i, s := range sets {
		c.Printf("%d. %s\n", i+1, s.Name)
	}
	reply, err := c.Prompt(ctx, "Enter the number of the set you want to learn: ")
	if errors.Is(err, io.EOF) {
		return 0, session.ErrAborted
	}
	if err != nil {
		return 0, err
	}
	set, err := session.Choose(sets, reply)
	if err != nil {
		return 0, err
	}
	return set.ID, nil
}

// PresentQuestion shows the term or definition and reads the answer.
func (c *Console) PresentQuestion(ctx context.Context, q session.Question) (string, error) {
	label, ask := labels(q.Direction)
	c.Clear()

	if c.tui {
		answer, err := c.ask(ctx, c.promptInput(), c.out, prompt.Request{
			Status:      roundStatus(q),
			Label:       label,
			Shown:       q.Shown,
			Placeholder: fmt.Sprintf("type the %s or %q", expectedNoun(q.Direction), session.ExitCommand),
		})
		if errors.Is(err, prompt.ErrCancelled) {
			return "", session.ErrAborted
		}
		return answer, err
	}

	c.Printf("%s: %s\n", label, q.Shown)
	answer, err := c.Prompt(ctx, ask)
	if errors.Is(err, io.EOF) {
		return "", session.ErrAborted
	}
	return answer, err
}

// ShowFeedback reports the grading and waits for Enter.
func (c *Console) ShowFeedback(ctx context.Context, f session.Feedback) error {
	if f.Correct {
		c.Styled(theme.Correct, "Correct!")
	} else {
		c.Styled(theme.Incorrect, fmt.Sprintf("Incorrect. The correct %s is: %s", expectedNoun(f.Direction), f.Expected))
	}
	return c.Pause(ctx)
}

func labels(d store.Direction) (label, ask string) {
	if d == store.DefinitionToTerm {
		return "Definition", "Enter the term: "
	}
	return "Term", "Enter the definition: "
}

func expectedNoun(d store.Direction) string {
	if d == store.DefinitionToTerm {
		return "term"
	}
	return "definition"
}

func roundStatus(q session.Question) string {
	return fmt.Sprintf("Round %d · %d/%d", q.Round, q.Position, q.RoundSize)
}
