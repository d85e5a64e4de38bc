package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFile(t *testing.T) {
	s := openTestStore(t)
	im := New(s.SetRepo(), nil)
	ctx := context.Background()

	set, err := im.ImportFile(ctx, "Capitals", writeSource(t, "France^Paris\nJapan^Tokyo\n"), false)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", set.Name)

	terms, err := s.SetRepo().Terms(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, terms, 2)

	ok, err := im.Exists(ctx, " Capitals ")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImport_ExistingWithoutOverwrite(t *testing.T) {
	s := openTestStore(t)
	im := New(s.SetRepo(), nil)
	ctx := context.Background()

	first, err := im.Import(ctx, "Capitals", []Record{{"France", "Paris"}}, false)
	require.NoError(t, err)

	_, err = im.Import(ctx, "Capitals", []Record{{"Peru", "Lima"}}, false)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	terms, err := s.SetRepo().Terms(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "France", terms[0].Term)
}

func TestImport_Overwrite(t *testing.T) {
	s := openTestStore(t)
	im := New(s.SetRepo(), nil)
	ctx := context.Background()

	first, err := im.Import(ctx, "Capitals", []Record{{"France", "Paris"}, {"Japan", "Tokyo"}}, false)
	require.NoError(t, err)
	_, err = s.SessionRepo().EnsureSession(ctx, first.ID)
	require.NoError(t, err)

	second, err := im.Import(ctx, "Capitals", []Record{{"Peru", "Lima"}}, true)
	require.NoError(t, err)

	exists, err := s.SessionRepo().SessionExists(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	terms, err := s.SetRepo().Terms(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, "Lima", terms[0].Definition)
}

func TestImportFile_MalformedLeavesStoreUntouched(t *testing.T) {
	s := openTestStore(t)
	im := New(s.SetRepo(), nil)
	ctx := context.Background()

	_, err := im.ImportFile(ctx, "Capitals", writeSource(t, "France^Paris\nJapan\n"), false)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	ok, err := im.Exists(ctx, "Capitals")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImport_EmptyName(t *testing.T) {
	s := openTestStore(t)
	im := New(s.SetRepo(), nil)

	_, err := im.Import(context.Background(), "   ", []Record{{"a", "b"}}, false)
	assert.ErrorIs(t, err, ErrEmptyName)
}
