// internal/words/words_test.go
package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewNormalizesAndDedupes(t *testing.T) {
	d := New([]string{"  CAT ", "cat", "Dog", "", "  "}, []string{"CHOCOLATE", "short", "adventure"})

	assert.Equal(t, 2, d.Len())
	assert.True(t, d.Contains("cat"))
	assert.True(t, d.Contains("CAT"), "lookup should be case-insensitive")
	assert.True(t, d.Contains(" dog "))
	assert.False(t, d.Contains("bird"))

	// Non-nine-letter solution candidates are discarded.
	assert.Equal(t, []string{"chocolate", "adventure"}, d.Solutions())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeFile(t, dir, "dict.txt", "cat\nhot\nlate\nchocolate\n")
	ninePath := writeFile(t, dir, "nine.txt", "chocolate\n")

	d, err := Load(dictPath, ninePath)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
	assert.True(t, d.Contains("chocolate"))
	assert.Equal(t, "chocolate", d.RandomSolution())
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	ninePath := writeFile(t, dir, "nine.txt", "chocolate\n")

	_, err := Load(filepath.Join(dir, "absent.txt"), ninePath)
	assert.Error(t, err)
}

func TestLoadEmptySolutions(t *testing.T) {
	dir := t.TempDir()
	dictPath := writeFile(t, dir, "dict.txt", "cat\n")
	ninePath := writeFile(t, dir, "nine.txt", "cat\ntoolong words\n")

	_, err := Load(dictPath, ninePath)
	assert.Error(t, err, "a solutions list with no nine-letter words is unusable")
}

func TestRandomSolutionDrawsFromList(t *testing.T) {
	d := New([]string{"chocolate", "adventure"}, []string{"chocolate", "adventure", "wonderful"})
	valid := map[string]bool{"chocolate": true, "adventure": true, "wonderful": true}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := d.RandomSolution()
		require.True(t, valid[s], "solution %q not from curated list", s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1, "200 draws from 3 candidates should hit more than one")
}

func TestReconcileAppendsMissing(t *testing.T) {
	dir := t.TempDir()
	// Note: no trailing newline after the last dictionary line; the
	// appended block must not glue onto it.
	dictPath := writeFile(t, dir, "dict.txt", "cat\nhot\nchocolate")
	ninePath := writeFile(t, dir, "nine.txt", "chocolate\nadventure\nwonderful\n")

	d, err := Load(dictPath, ninePath)
	require.NoError(t, err)

	added, err := d.Reconcile(dictPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"adventure", "wonderful"}, added)

	// Existing content preserved byte-for-byte, missing words appended.
	data, err := os.ReadFile(dictPath)
	require.NoError(t, err)
	assert.Equal(t, "cat\nhot\nchocolate\nadventure\nwonderful", string(data))

	// The in-memory set is updated too.
	assert.True(t, d.Contains("adventure"))

	// A second pass has nothing left to do.
	added, err = d.Reconcile(dictPath)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestMissingSolutions(t *testing.T) {
	d := New([]string{"chocolate"}, []string{"chocolate", "adventure"})
	assert.Equal(t, []string{"adventure"}, d.MissingSolutions())
}
