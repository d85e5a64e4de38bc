package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSets is returned by Learn when nothing has been imported.
	ErrNoSets = errors.New("no sets available")

	// ErrAborted is returned by a Presenter when the learner leaves the
	// drill without typing the exit command.
	ErrAborted = errors.New("drill aborted")
)

// SelectionError reports an unusable set choice.
type SelectionError struct {
	Input string
	Max   int
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("invalid choice %q: enter a number between 1 and %d", e.Input, e.Max)
}
