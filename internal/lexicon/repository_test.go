package lexicon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/flashcards/internal/yamlfile"
)

const testCSV = "rank,word,pos,definition,sample,frequency\n" +
	"3,que,conj,that,creo que sí,800\n" +
	"1,de,prep,of,la casa de mi madre,1000\n" +
	"2,la,art,the,la mesa,900\n"

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "lexicon.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func TestRepository_EnsureLoaded(t *testing.T) {
	t.Run("imports the CSV and writes the cache", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "cache", "lexicon_es_v1.yml")
		repo := NewRepository(writeCSV(t, dir), cachePath)

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		assert.True(t, repo.IsReady())

		entries := repo.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, []string{"de", "la", "que"}, lemmas(entries))

		cached, err := yamlfile.Read[[]Entry](cachePath)
		require.NoError(t, err)
		assert.Len(t, cached, 3)
	})

	t.Run("prefers the cache over the CSV", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "lexicon.yml")
		require.NoError(t, yamlfile.Write(cachePath, []Entry{{Rank: 1, Lemma: "hola"}}))
		repo := NewRepository(writeCSV(t, dir), cachePath)

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		assert.Equal(t, []string{"hola"}, lemmas(repo.Entries()))
	})

	t.Run("falls back to the CSV when the cache is corrupt", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "lexicon.yml")
		require.NoError(t, os.WriteFile(cachePath, []byte("{{ not yaml"), 0o644))
		repo := NewRepository(writeCSV(t, dir), cachePath)

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		assert.Len(t, repo.Entries(), 3)
	})

	t.Run("fails without cache and CSV", func(t *testing.T) {
		dir := t.TempDir()
		repo := NewRepository("", filepath.Join(dir, "lexicon.yml"))

		err := repo.EnsureLoaded(context.Background())
		assert.ErrorIs(t, err, ErrNotLoaded)
		assert.False(t, repo.IsReady())
		assert.Empty(t, repo.Entries())
	})

	t.Run("imports the fallback CSV without a configured file", func(t *testing.T) {
		dir := t.TempDir()
		cachePath := filepath.Join(dir, "lexicon.yml")
		fallback := []byte("rank,word,pos,definition,sample,frequency\n2,de,preposition,of,,\n1,el,article,the,,\n")
		repo := NewRepository("", cachePath, WithFallbackCSV(fallback))

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		entries := repo.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "el", entries[0].Lemma)
		_, err := os.Stat(cachePath)
		assert.NoError(t, err)
	})

	t.Run("keeps the imported entries when the cache cannot be written", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))
		repo := NewRepository(writeCSV(t, dir), filepath.Join(blocker, "lexicon.yml"))

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		assert.True(t, repo.IsReady())
		assert.Equal(t, []string{"de", "la", "que"}, lemmas(repo.Entries()))
	})

	t.Run("loads only once", func(t *testing.T) {
		dir := t.TempDir()
		csvPath := writeCSV(t, dir)
		repo := NewRepository(csvPath, filepath.Join(dir, "lexicon.yml"))

		require.NoError(t, repo.EnsureLoaded(context.Background()))
		require.NoError(t, os.Remove(csvPath))
		require.NoError(t, repo.EnsureLoaded(context.Background()))
		assert.Len(t, repo.Entries(), 3)
	})
}

func TestRepository_Queries(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(writeCSV(t, dir), filepath.Join(dir, "lexicon.yml"))
	require.NoError(t, repo.EnsureLoaded(context.Background()))

	t.Run("TopEntries", func(t *testing.T) {
		assert.Equal(t, []string{"de", "la"}, lemmas(repo.TopEntries(2)))
		assert.Len(t, repo.TopEntries(10), 3)
		assert.Empty(t, repo.TopEntries(-1))
	})

	t.Run("Search", func(t *testing.T) {
		assert.Equal(t, []string{"la"}, lemmas(repo.Search("ART")))
		assert.Equal(t, []string{"que"}, lemmas(repo.Search("that")))
		assert.Empty(t, repo.Search("perro"))
	})

	t.Run("FindByLemma", func(t *testing.T) {
		entry, ok := repo.FindByLemma("LA")
		require.True(t, ok)
		assert.Equal(t, 2, entry.Rank)

		_, ok = repo.FindByLemma("perro")
		assert.False(t, ok)
	})
}

func TestRepository_Reset(t *testing.T) {
	dir := t.TempDir()
	cachePath := filepath.Join(dir, "lexicon.yml")
	repo := NewRepository(writeCSV(t, dir), cachePath)
	require.NoError(t, repo.EnsureLoaded(context.Background()))

	require.NoError(t, repo.Reset())
	assert.False(t, repo.IsReady())
	assert.Empty(t, repo.Entries())
	_, err := os.Stat(cachePath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, repo.Reset(), "resetting twice is not an error")
}

func lemmas(entries []Entry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.Lemma
	}
	return result
}
