// Package session runs the mastery drill for one set: it creates or resumes
// the set's session snapshot, serves unmastered entries round after round,
// grades answers and clears the snapshot once everything is mastered.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/drill/internal/store"
)

// SetLister lists the sets a learner can pick from.
type SetLister interface {
	ListSets(ctx context.Context) ([]store.Set, error)
}

// SessionStore persists per-set mastery rows.
type SessionStore interface {
	EnsureSession(ctx context.Context, setID int64) (bool, error)
	UnmasteredEntries(ctx context.Context, setID int64) ([]store.Entry, error)
	MarkMastered(ctx context.Context, setID, termID int64) error
	ClearSession(ctx context.Context, setID int64) error
}

// DirectionSource supplies the learning direction.
type DirectionSource interface {
	LearningDirection(ctx context.Context) (store.Direction, error)
}

// Deps holds the collaborators of an Engine.
type Deps struct {
	Sets      SetLister
	Sessions  SessionStore
	Settings  DirectionSource
	Presenter Presenter
}

// Outcome describes how a drill ended.
type Outcome int

const (
	OutcomeUnknown   Outcome = iota // drill failed before reaching an end
	OutcomeCompleted                // every entry mastered, session cleared
	OutcomeAborted                  // learner left; progress kept
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result summarizes one drill.
type Result struct {
	RunID    string
	SetID    int64
	Outcome  Outcome
	Resumed  bool // an existing snapshot was continued
	Rounds   int
	Answered int
	Correct  int
}

// Accuracy returns the fraction of answers that were correct.
func (r Result) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// Engine drives drills. It keeps no state between calls; everything is
// re-read from the store, so a drill interrupted at any point resumes
// from the last recorded answer.
type Engine struct {
	deps   Deps
	rand   *rand.Rand
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source used to order each round.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rand = r }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine returns an Engine over deps.
func NewEngine(deps Deps, opts ...Option) *Engine {
	e := &Engine{
		deps:   deps,
		rand:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "session")
	return e
}

// Learn asks the learner to pick a set and drills it.
func (e *Engine) Learn(ctx context.Context) (Result, error) {
	sets, err := e.deps.Sets.ListSets(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list sets: %w", err)
	}
	if len(sets) == 0 {
		return Result{}, ErrNoSets
	}

	setID, err := e.deps.Presenter.SelectSet(ctx, sets)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return Result{Outcome: OutcomeAborted}, nil
		}
		return Result{}, err
	}
	return e.Drill(ctx, setID)
}

// Drill runs rounds over the set's unmastered entries until all are
// mastered, the learner exits, or an error occurs.
func (e *Engine) Drill(ctx context.Context, setID int64) (Result, error) {
	res := Result{RunID: uuid.NewString(), SetID: setID}
	log := e.logger.With("run_id", res.RunID, "set_id", setID)

	dir, err := e.deps.Settings.LearningDirection(ctx)
	if err != nil {
		return res, fmt.Errorf("learning direction: %w", err)
	}

	created, err := e.deps.Sessions.EnsureSession(ctx, setID)
	if err != nil {
		return res, fmt.Errorf("start session: %w", err)
	}
	res.Resumed = !created
	if created {
		log.Info("session created", "direction", dir.String())
	} else {
		log.Info("session resumed", "direction", dir.String())
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		entries, err := e.deps.Sessions.UnmasteredEntries(ctx, setID)
		if err != nil {
			return res, fmt.Errorf("fetch unmastered entries: %w", err)
		}
		if len(entries) == 0 {
			if err := e.deps.Sessions.ClearSession(ctx, setID); err != nil {
				return res, fmt.Errorf("clear session: %w", err)
			}
			res.Outcome = OutcomeCompleted
			log.Info("session completed", "rounds", res.Rounds, "answered", res.Answered)
			return res, nil
		}

		res.Rounds++
		done, err := e.round(ctx, &res, dir, entries)
		if err != nil {
			return res, err
		}
		if done {
			res.Outcome = OutcomeAborted
			log.Info("session aborted", "rounds", res.Rounds, "answered", res.Answered)
			return res, nil
		}
	}
}

// round asks every entry once in random order. It reports true when the
// learner left the drill.
func (e *Engine) round(ctx context.Context, res *Result, dir store.Direction, entries []store.Entry) (bool, error) {
	remaining := len(entries)
	pos := 0
	for entry := range shuffled(e.rand, entries) {
		pos++
		shown, _ := PromptFor(dir, entry)
		answer, err := e.deps.Presenter.PresentQuestion(ctx, Question{
			SetID:     res.SetID,
			Direction: dir,
			Shown:     shown,
			Round:     res.Rounds,
			Position:  pos,
			RoundSize: len(entries),
		})
		if errors.Is(err, ErrAborted) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("present question: %w", err)
		}
		if IsExit(answer) {
			return true, nil
		}

		v := Grade(dir, entry, answer)
		res.Answered++
		if v.Correct {
			if err := e.deps.Sessions.MarkMastered(ctx, res.SetID, entry.TermID); err != nil {
				return false, fmt.Errorf("mark mastered: %w", err)
			}
			res.Correct++
			remaining--
		}

		err = e.deps.Presenter.ShowFeedback(ctx, Feedback{
			Direction: dir,
			Correct:   v.Correct,
			Expected:  v.Expected,
			Remaining: remaining,
		})
		if errors.Is(err, ErrAborted) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("show feedback: %w", err)
		}
	}
	return false, nil
}
