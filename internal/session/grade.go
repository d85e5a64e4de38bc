package session

import (
	"strings"

	"github.com/abhisek/drill/internal/store"
)

// ExitCommand ends a drill when typed as an answer.
const ExitCommand = "exit"

// Verdict is the outcome of grading one answer.
type Verdict struct {
	Correct  bool
	Expected string
}

// PromptFor returns the side of e shown to the learner and the side
// expected back.
func PromptFor(dir store.Direction, e store.Entry) (shown, expected string) {
	if dir == store.DefinitionToTerm {
		return e.Definition, e.Term
	}
	return e.Term, e.Definition
}

// Grade compares answer against the expected side of e. Surrounding
// whitespace is ignored and letter case does not matter.
func Grade(dir store.Direction, e store.Entry, answer string) Verdict {
	_, expected := PromptFor(dir, e)
	return Verdict{
		Correct:  strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected)),
		Expected: expected,
	}
}

// IsExit reports whether answer is the exit command.
func IsExit(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), ExitCommand)
}
