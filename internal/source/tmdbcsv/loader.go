package tmdbcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
)

// ErrMissingColumn is returned when the CSV header lacks a column the ranking needs.
var ErrMissingColumn = errors.New("missing required column")

// requiredColumns must all appear in the header. The remaining Row columns
// fall back to defaults when absent.
var requiredColumns = []string{"id", "title", "vote_count", "vote_average"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one line of the movies metadata CSV. Numeric columns stay text so a
// bad cell only affects its own row.
type Row struct {
	ID          string `csv:"id"`
	Title       string `csv:"title"`
	Genres      string `csv:"genres"`
	VoteCount   string `csv:"vote_count"`
	VoteAverage string `csv:"vote_average"`
	ReleaseDate string `csv:"release_date"`
	Overview    string `csv:"overview"`
}

// LoadRows reads the whole CSV at path.
// Parameters:
//   - path: CSV file location.
// Returns:
//   - []Row: rows in file order.
//   - error: non-nil if the file is missing, unparsable, or lacks a required column.
func LoadRows(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	if err := checkHeader(data); err != nil {
		return nil, err
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return rows, nil
}

func checkHeader(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}
