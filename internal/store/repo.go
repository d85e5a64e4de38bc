package store

import (
	"context"
	"fmt"
)

// Set is a named collection of terms.
type Set struct {
	ID   int64
	Name string
}

// Term is one term/definition pair belonging to a set.
type Term struct {
	ID         int64
	SetID      int64
	Term       string
	Definition string
}

// NewTerm is a term/definition pair about to be inserted.
type NewTerm struct {
	Term       string
	Definition string
}

// Entry is an unmastered session row joined with its term text.
type Entry struct {
	TermID     int64
	Term       string
	Definition string
}

// Progress counts the session rows of one set.
type Progress struct {
	Total    int // session rows; zero when no session is active
	Mastered int
}

// Active reports whether the set has a session snapshot.
func (p Progress) Active() bool {
	return p.Total > 0
}

// SetSummary describes a set for listings.
type SetSummary struct {
	Set
	Terms    int
	Progress Progress
}

// Direction selects which side of a term is shown and which is expected.
type Direction int

const (
	TermToDefinition Direction = iota
	DefinitionToTerm
)

// DefaultDirection applies when no direction has been saved.
const DefaultDirection = TermToDefinition

// String returns the persisted form of d.
func (d Direction) String() string {
	switch d {
	case DefinitionToTerm:
		return "definition_to_term"
	default:
		return "term_to_definition"
	}
}

// ParseDirection decodes a persisted or user-supplied direction. Dashes are
// accepted in place of underscores.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "term_to_definition", "term-to-definition":
		return TermToDefinition, nil
	case "definition_to_term", "definition-to-term":
		return DefinitionToTerm, nil
	}
	return DefaultDirection, fmt.Errorf("unknown learning direction %q", s)
}

// SetRepo manages sets and their terms.
type SetRepo interface {
	// SetExists reports whether a set with the given name exists.
	SetExists(ctx context.Context, name string) (bool, error)

	// SetByName returns the named set or a not-found error.
	SetByName(ctx context.Context, name string) (Set, error)

	// CreateSet inserts an empty set and returns its id.
	CreateSet(ctx context.Context, name string) (int64, error)

	// DeleteSet removes the set with its terms and session rows.
	DeleteSet(ctx context.Context, id int64) error

	// ListSets returns all sets ordered by id.
	ListSets(ctx context.Context) ([]Set, error)

	// Terms returns the terms of a set ordered by id.
	Terms(ctx context.Context, setID int64) ([]Term, error)

	// ImportSet creates the named set with terms in one transaction. When
	// the name exists it fails with ErrSetExists unless overwrite is set,
	// in which case the old set is replaced.
	ImportSet(ctx context.Context, name string, terms []NewTerm, overwrite bool) (Set, error)

	// Summaries returns every set with its term count and session progress.
	Summaries(ctx context.Context) ([]SetSummary, error)
}

// SessionRepo manages per-set mastery rows.
type SessionRepo interface {
	// SessionExists reports whether the set has any session rows.
	SessionExists(ctx context.Context, setID int64) (bool, error)

	// CreateSessionSnapshot inserts one unmastered row per term of the set.
	CreateSessionSnapshot(ctx context.Context, setID int64) error

	// EnsureSession creates the snapshot unless one exists, in a single
	// transaction. It reports whether a snapshot was created.
	EnsureSession(ctx context.Context, setID int64) (bool, error)

	// UnmasteredEntries returns the set's rows still to be learned.
	UnmasteredEntries(ctx context.Context, setID int64) ([]Entry, error)

	// MarkMastered flags one row as mastered. Marking twice is a no-op;
	// a missing row is a not-found error.
	MarkMastered(ctx context.Context, setID, termID int64) error

	// ClearSession deletes every row of the set's session.
	ClearSession(ctx context.Context, setID int64) error

	// Progress counts the set's session rows.
	Progress(ctx context.Context, setID int64) (Progress, error)
}

// SettingsRepo manages global settings.
type SettingsRepo interface {
	// LearningDirection returns the saved direction or DefaultDirection.
	LearningDirection(ctx context.Context) (Direction, error)

	// SetLearningDirection saves the direction.
	SetLearningDirection(ctx context.Context, d Direction) error
}
