package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/abhisek/drill/internal/store"
)

// Question is one prompt shown to the learner.
type Question struct {
	SetID     int64
	Direction store.Direction
	Shown     string
	Round     int
	Position  int // 1-based within the round
	RoundSize int
}

// Feedback reports the grading of one answer.
type Feedback struct {
	Direction store.Direction
	Correct   bool
	Expected  string
	Remaining int // entries still unmastered after this answer
}

// Presenter is the learner-facing side of a drill. Calls may block
// until the learner responds.
type Presenter interface {
	// SelectSet asks the learner to pick one of sets and returns its id.
	SelectSet(ctx context.Context, sets []store.Set) (int64, error)

	// PresentQuestion shows q and returns the raw answer.
	PresentQuestion(ctx context.Context, q Question) (string, error)

	// ShowFeedback shows the grading of the last answer.
	ShowFeedback(ctx context.Context, f Feedback) error
}

// Choose resolves a 1-based menu choice against sets.
func Choose(sets []store.Set, input string) (store.Set, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > len(sets) {
		return store.Set{}, &SelectionError{Input: input, Max: len(sets)}
	}
	return sets[n-1], nil
}
