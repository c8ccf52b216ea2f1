package walker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetupdocs/internal/walker"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func names(entries []walker.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestList_filtersHiddenExtensionsAndNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, ".DS_Store"))
	touch(t, filepath.Join(dir, "README.md"))
	touch(t, filepath.Join(dir, "notes.MD"))
	touch(t, filepath.Join(dir, "build.sh"))
	touch(t, filepath.Join(dir, "Info.yml"))
	touch(t, filepath.Join(dir, "Talk2", "Speaker.yml"))
	touch(t, filepath.Join(dir, "Talk1", "Speaker.yml"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	entries, err := walker.List(dir, []string{"md", "sh"}, "Info.yml")

	require.NoError(t, err)
	assert.Equal(t, []string{"Talk1", "Talk2", "notes.MD"}, names(entries))
	assert.True(t, entries[0].IsDir)
	assert.False(t, entries[2].IsDir)
	assert.Equal(t, filepath.Join(dir, "Talk1"), entries[0].Path)
}

func TestList_keepsConfigFileWithoutSkipName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Info.yml"))

	entries, err := walker.List(dir, []string{"md"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Info.yml"}, names(entries))
	assert.Equal(t, "yml", entries[0].Ext())
}

func TestList_missingDirectoryIsIOError(t *testing.T) {
	_, err := walker.List(filepath.Join(t.TempDir(), "nope"), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, walker.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
