package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/abhisek/drill/internal/store"
)

var (
	// ErrAlreadyExists is returned when the set name is taken and
	// overwrite was not requested.
	ErrAlreadyExists = errors.New("set already exists")

	// ErrEmptyName is returned for a blank set name.
	ErrEmptyName = errors.New("set name is empty")
)

// Repo is the store surface the importer writes through.
type Repo interface {
	SetExists(ctx context.Context, name string) (bool, error)
	ImportSet(ctx context.Context, name string, terms []store.NewTerm, overwrite bool) (store.Set, error)
}

// Importer creates or replaces sets from parsed records.
type Importer struct {
	repo   Repo
	logger *slog.Logger
}

// New returns an Importer writing through repo.
func New(repo Repo, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Importer{repo: repo, logger: logger.With("component", "importer")}
}

// Exists reports whether a set named name is already stored.
func (im *Importer) Exists(ctx context.Context, name string) (bool, error) {
	return im.repo.SetExists(ctx, strings.TrimSpace(name))
}

// Import stores records as the set name. An existing set is replaced only
// when overwrite is true; otherwise ErrAlreadyExists is returned and
// nothing changes.
func (im *Importer) Import(ctx context.Context, name string, records []Record, overwrite bool) (store.Set, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Set{}, ErrEmptyName
	}

	terms := make([]store.NewTerm, len(records))
	for i, r := range records {
		terms[i] = store.NewTerm{Term: r.Term, Definition: r.Definition}
	}

	set, err := im.repo.ImportSet(ctx, name, terms, overwrite)
	if err != nil {
		if errors.Is(err, store.ErrSetExists) {
			return store.Set{}, fmt.Errorf("%w: %q", ErrAlreadyExists, name)
		}
		return store.Set{}, fmt.Errorf("import set %q: %w", name, err)
	}

	im.logger.Info("set imported", "set", name, "set_id", set.ID, "terms", len(terms), "overwrite", overwrite)
	return set, nil
}

// ImportFile parses path completely, then stores it as the set name.
// A parse failure leaves the store untouched.
func (im *Importer) ImportFile(ctx context.Context, name, path string, overwrite bool) (store.Set, error) {
	records, err := ParseFile(path)
	if err != nil {
		return store.Set{}, err
	}
	return im.Import(ctx, name, records, overwrite)
}
