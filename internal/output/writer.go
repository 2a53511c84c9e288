package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
)

// renameFunc is swapped in tests to simulate a failing rename.
var renameFunc = os.Rename

// Writer serializes movies to a JSON file.
type Writer struct {
	Path         string
	FallbackPath string
}

// NewWriter creates a writer for path. fallback may be empty.
func NewWriter(path, fallback string) *Writer {
	return &Writer{Path: path, FallbackPath: fallback}
}

// Encode renders movies as a JSON array indented with four spaces.
// A nil slice is written as [].
func Encode(movies []domain.Movie) ([]byte, error) {
	if movies == nil {
		movies = []domain.Movie{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(movies); err != nil {
		return nil, fmt.Errorf("failed to encode movies: %w", err)
	}
	return buf.Bytes(), nil
}

// Write encodes movies and replaces the file at Path. When that fails and a
// FallbackPath is set, it tries the fallback once.
// Returns:
//   - string: the path that was written.
//   - []byte: the encoded document.
//   - error: encode error, or the write error of the last attempted path.
func (w *Writer) Write(movies []domain.Movie) (string, []byte, error) {
	data, err := Encode(movies)
	if err != nil {
		return "", nil, err
	}

	primaryErr := WriteFileAtomic(w.Path, data)
	if primaryErr == nil {
		return w.Path, data, nil
	}
	if w.FallbackPath == "" || w.FallbackPath == w.Path {
		return "", nil, fmt.Errorf("failed to write %s: %w", w.Path, primaryErr)
	}

	logger.GetDefault().WithFields(logger.Fields{
		"path":     w.Path,
		"fallback": w.FallbackPath,
	}).WithError(primaryErr).Warn("Primary output path not writable, trying fallback")

	if err := WriteFileAtomic(w.FallbackPath, data); err != nil {
		return "", nil, fmt.Errorf("failed to write %s (fallback for %s): %w", w.FallbackPath, w.Path, err)
	}
	return w.FallbackPath, data, nil
}

// WriteFileAtomic replaces path with data through a temp file in the same
// directory and a rename. Parent directories are created as needed.
func WriteFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := renameFunc(tmpName, filepath.Join(dir, name)); err != nil {
		return err
	}

	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
