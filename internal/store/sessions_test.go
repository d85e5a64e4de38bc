package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSession_Idempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")

	created, err := repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, repo.MarkMastered(ctx, set.ID, firstTermID(t, s, set.ID)))

	created, err = repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	assert.False(t, created)

	p, err := repo.Progress(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{Total: 2, Mastered: 1}, p)
}

func TestCreateSessionSnapshot_Complete(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Colors", "red", "rot", "blue", "blau", "green", "grün")
	other := seedSet(t, s, "Other", "a", "b")

	require.NoError(t, repo.CreateSessionSnapshot(ctx, set.ID))

	entries, err := repo.UnmasteredEntries(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	exists, err := repo.SessionExists(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, exists, "snapshot must not touch other sets")
}

func TestCreateSessionSnapshot_Twice(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Colors", "red", "rot")

	require.NoError(t, repo.CreateSessionSnapshot(ctx, set.ID))
	err := repo.CreateSessionSnapshot(ctx, set.ID)
	assert.ErrorIs(t, err, ErrConstraint)

	p, err := repo.Progress(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Total)
}

func TestUnmasteredEntries_JoinsTermText(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")
	_, err := repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)

	terms, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	require.NoError(t, repo.MarkMastered(ctx, set.ID, terms[0].ID))

	entries, err := repo.UnmasteredEntries(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, []Entry{{TermID: terms[1].ID, Term: "Japan", Definition: "Tokyo"}}, entries)
}

func TestUnmasteredEntries_ScopedToSet(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	capitals := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")
	colors := seedSet(t, s, "Colors", "red", "rot")
	for _, id := range []int64{capitals.ID, colors.ID} {
		_, err := repo.EnsureSession(ctx, id)
		require.NoError(t, err)
	}

	entries, err := repo.UnmasteredEntries(ctx, colors.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "red", entries[0].Term)
	assert.Equal(t, "rot", entries[0].Definition)

	entries, err = repo.UnmasteredEntries(ctx, capitals.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestMarkMastered(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris")
	id := firstTermID(t, s, set.ID)

	// No session yet.
	err := repo.MarkMastered(ctx, set.ID, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)

	require.NoError(t, repo.MarkMastered(ctx, set.ID, id))
	require.NoError(t, repo.MarkMastered(ctx, set.ID, id), "marking twice is a no-op")

	entries, err := repo.UnmasteredEntries(ctx, set.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()
	set := seedSet(t, s, "Capitals", "France", "Paris", "Japan", "Tokyo")
	other := seedSet(t, s, "Other", "a", "b")

	_, err := repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	_, err = repo.EnsureSession(ctx, other.ID)
	require.NoError(t, err)

	require.NoError(t, repo.ClearSession(ctx, set.ID))

	exists, err := repo.SessionExists(ctx, set.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.SessionExists(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// A cleared set starts over with a fresh snapshot.
	created, err := repo.EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	assert.True(t, created)
	entries, err := repo.UnmasteredEntries(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	set, err := s.SetRepo().ImportSet(ctx, "Capitals", []NewTerm{
		{Term: "France", Definition: "Paris"},
		{Term: "Japan", Definition: "Tokyo"},
	}, false)
	require.NoError(t, err)
	_, err = s.SessionRepo().EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	require.NoError(t, s.SessionRepo().MarkMastered(ctx, set.ID, firstTermID(t, s, set.ID)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	created, err := s.SessionRepo().EnsureSession(ctx, set.ID)
	require.NoError(t, err)
	assert.False(t, created)

	entries, err := s.SessionRepo().UnmasteredEntries(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Japan", entries[0].Term)
}
