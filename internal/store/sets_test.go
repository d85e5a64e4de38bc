package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRepo_CreateAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.SetRepo()
	ctx := context.Background()

	sets, err := repo.ListSets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)

	a, err := repo.CreateSet(ctx, "Alpha")
	require.NoError(t, err)
	b, err := repo.CreateSet(ctx, "Beta")
	require.NoError(t, err)

	sets, err = repo.ListSets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Set{{ID: a, Name: "Alpha"}, {ID: b, Name: "Beta"}}, sets)

	ok, err := repo.SetExists(ctx, "Alpha")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetExists(ctx, "Gamma")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetRepo_CreateDuplicateName(t *testing.T) {
	s := openTestStore(t)
	repo := s.SetRepo()
	ctx := context.Background()

	_, err := repo.CreateSet(ctx, "Alpha")
	require.NoError(t, err)

	_, err = repo.CreateSet(ctx, "Alpha")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConstraint)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, KindConstraint, se.Kind)
	assert.Equal(t, "create set", se.Op)
}

func TestSetRepo_SetByNameMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.SetRepo().SetByName(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetRepo_ImportSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	set := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")

	terms, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "France", terms[0].Term)
	assert.Equal(t, "Paris", terms[0].Definition)
	assert.Equal(t, "Japan", terms[1].Term)
	assert.Equal(t, set.ID, terms[1].SetID)
}

func TestSetRepo_ImportExistingWithoutOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris")

	_, err := s.SetRepo().ImportSet(ctx, "Capitals", []NewTerm{{Term: "Peru", Definition: "Lima"}}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSetExists)
	assert.ErrorIs(t, err, ErrConstraint)

	terms, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "France", terms[0].Term)
}

func TestSetRepo_ImportOverwriteReplacesSetAndSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	old := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")

	_, err := s.SessionRepo().EnsureSession(ctx, old.ID)
	require.NoError(t, err)

	// SQLite may hand the replacement the old rowid, so check by content.
	set, err := s.SetRepo().ImportSet(ctx, "Capitals", []NewTerm{{Term: "Peru", Definition: "Lima"}}, true)
	require.NoError(t, err)

	var stale int
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*) FROM terms WHERE term IN ('France', 'Japan')").Scan(&stale))
	assert.Zero(t, stale)

	exists, err := s.SessionRepo().SessionExists(ctx, set.ID)
	require.NoError(t, err)
	assert.False(t, exists, "overwrite discards the old session")

	var sessionRows int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM sessions").Scan(&sessionRows))
	assert.Zero(t, sessionRows)

	terms, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Peru", terms[0].Term)

	sets, err := s.SetRepo().ListSets(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}

func TestSetRepo_ImportManyTermsBatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	terms := make([]NewTerm, termBatch*2+7)
	for i := range terms {
		terms[i] = NewTerm{Term: "t", Definition: "d"}
	}
	set, err := s.SetRepo().ImportSet(ctx, "Big", terms, false)
	require.NoError(t, err)

	got, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, got, len(terms))
}

func TestSetRepo_DeleteSet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris")
	_, err := s.SessionRepo().EnsureSession(ctx, set.ID)
	require.NoError(t, err)

	require.NoError(t, s.SetRepo().DeleteSet(ctx, set.ID))

	ok, err := s.SetRepo().SetExists(ctx, "Capitals")
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.SetRepo().DeleteSet(ctx, set.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetRepo_Summaries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	a := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")
	seedSet(t, s, "Empty")

	_, err := s.SessionRepo().EnsureSession(ctx, a.ID)
	require.NoError(t, err)
	require.NoError(t, s.SessionRepo().MarkMastered(ctx, a.ID, firstTermID(t, s, a.ID)))

	sums, err := s.SetRepo().Summaries(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, "Capitals", sums[0].Name)
	assert.Equal(t, 2, sums[0].Terms)
	assert.Equal(t, Progress{Total: 2, Mastered: 1}, sums[0].Progress)
	assert.True(t, sums[0].Progress.Active())

	assert.Equal(t, "Empty", sums[1].Name)
	assert.Zero(t, sums[1].Terms)
	assert.False(t, sums[1].Progress.Active())
}

func firstTermID(t *testing.T, s *Store, setID int64) int64 {
	t.Helper()
	terms, err := s.SetRepo().Terms(context.Background(), setID)
	require.NoError(t, err)
	require.NotEmpty(t, terms)
	return terms[0].ID
}
