package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/moviedir/internal/domain"
)

func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{
			ID:          27205,
			Title:       "Inception",
			Genre:       "Action",
			Rating:      domain.NewRating(8.0),
			ReleaseYear: 2010,
			Description: "Cobb & co.",
			ImageURL:    domain.PlaceholderImageURL(27205),
		},
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(sampleMovies())
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"id\": 27205,"), text)
	assert.Contains(t, text, `"rating": 8.0,`)
	assert.Contains(t, text, `"release_year": 2010,`)
	assert.Contains(t, text, `"Cobb & co."`)
	assert.Contains(t, text, `"image_url": "https://loremflickr.com/500/750/movie?lock=27205"`)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Len(t, decoded[0], 7)
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriterCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app", "data.json")

	used, data, err := NewWriter(path, "").Write(sampleMovies())
	require.NoError(t, err)
	assert.Equal(t, path, used)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	entries, err := os.ReadDir(filepath.Join(dir, "app"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".data.json.tmp-"), "temp file left: %s", e.Name())
	}
}

func TestWriterReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	_, _, err := NewWriter(path, "").Write(nil)
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(onDisk))
}

func TestWriterFallsBack(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the parent directory should be makes the primary path unwritable.
	blocker := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	primary := filepath.Join(blocker, "data.json")
	fallback := filepath.Join(dir, "data.json")

	used, _, err := NewWriter(primary, fallback).Write(sampleMovies())
	require.NoError(t, err)
	assert.Equal(t, fallback, used)
	assert.FileExists(t, fallback)
}

func TestWriterFailsWithoutFallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "src")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, _, err := NewWriter(filepath.Join(blocker, "data.json"), "").Write(sampleMovies())
	require.Error(t, err)
}

func TestWriteFileAtomicRenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()

	old := renameFunc
	renameFunc = func(oldpath, newpath string) error {
		return os.ErrPermission
	}
	defer func() { renameFunc = old }()

	err := WriteFileAtomic(filepath.Join(dir, "data.json"), []byte("[]"))
	require.ErrorIs(t, err, os.ErrPermission)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
