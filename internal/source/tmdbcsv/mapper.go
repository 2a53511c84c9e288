package tmdbcsv

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/timmy/moviedir/internal/domain"
	"gopkg.in/yaml.v3"
)

// Field failure modes. Each one degrades its field to a default; none rejects the row.
var (
	ErrGenreMissing   = errors.New("genre field is blank")
	ErrGenreMalformed = errors.New("genre field is not a list of objects")
	ErrGenreEmpty     = errors.New("genre list has no usable name")
	ErrDateMissing    = errors.New("release date is blank")
	ErrDateMalformed  = errors.New("release date has no leading year")
)

// genreEntry is one object of the genres list, e.g. {'id': 28, 'name': 'Action'}.
type genreEntry struct {
	Name string `yaml:"name"`
}

// ParseGenre returns the name of the first genre object.
// The field is either JSON or the single-quoted repr the dataset ships with;
// YAML flow syntax reads both.
func ParseGenre(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrGenreMissing
	}

	var entries []genreEntry
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenreMalformed, err)
	}
	if len(entries) == 0 || strings.TrimSpace(entries[0].Name) == "" {
		return "", ErrGenreEmpty
	}
	return strings.TrimSpace(entries[0].Name), nil
}

// ParseReleaseYear returns the leading YYYY of a date such as "2010-07-16".
func ParseReleaseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrDateMissing
	}

	head, _, _ := strings.Cut(raw, "-")
	if len(head) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrDateMalformed, raw)
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDateMalformed, raw)
	}
	return year, nil
}

// FieldIssue names a field that fell back to its default.
type FieldIssue struct {
	Field string
	Err   error
}

// MapCandidate derives a Movie from a ranked row. The image is the seeded
// placeholder; the enricher may replace it later.
// Parameters:
//   - c: ranked candidate.
// Returns:
//   - domain.Movie: normalised record.
//   - []FieldIssue: fields that degraded to defaults.
func MapCandidate(c Candidate) (domain.Movie, []FieldIssue) {
	var issues []FieldIssue

	genre, err := ParseGenre(c.Genres)
	if err != nil {
		genre = domain.DefaultGenre
		issues = append(issues, FieldIssue{Field: "genre", Err: err})
	}

	year, err := ParseReleaseYear(c.ReleaseDate)
	if err != nil {
		year = domain.DefaultReleaseYear
		issues = append(issues, FieldIssue{Field: "release_year", Err: err})
	}

	description := strings.TrimSpace(c.Overview)
	if description == "" {
		description = domain.DefaultDescription
	}

	return domain.Movie{
		ID:          c.MovieID,
		Title:       strings.TrimSpace(c.Title),
		Genre:       genre,
		Rating:      domain.NewRatingFromDecimal(c.Average),
		ReleaseYear: year,
		Description: description,
		ImageURL:    domain.PlaceholderImageURL(c.MovieID),
	}, issues
}
