package store

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Kind classifies a store failure.
type Kind int

const (
	KindIO Kind = iota
	KindNotFound
	KindConstraint
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindConstraint:
		return "constraint violation"
	default:
		return "i/o"
	}
}

// Sentinel errors matched by errors.Is against any *Error of that kind.
var (
	ErrNotFound   = errors.New("store: not found")
	ErrConstraint = errors.New("store: constraint violation")
	ErrIO         = errors.New("store: i/o failure")

	// ErrSetExists is returned by ImportSet when the name is taken and
	// overwrite was not requested.
	ErrSetExists = errors.New("set already exists")
)

// Error is returned by every repository operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("store: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConstraint:
		return e.Kind == KindConstraint
	case ErrIO:
		return e.Kind == KindIO
	}
	return false
}

// mapError wraps err as an *Error for op, classifying driver failures.
// A nil err stays nil and an existing *Error is passed through.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return KindConstraint
	}
	return KindIO
}

func notFound(op string, format string, args ...any) error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf(format, args...)}
}
