package tmdbcsv

import (
	"context"
	"fmt"

	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
	"github.com/timmy/moviedir/internal/source"
)

// Adapter implements the Source interface for a TMDB movies metadata CSV.
type Adapter struct {
	path     string
	minVotes int
	limit    int
}

// NewAdapter creates a new CSV adapter.
// Parameters:
//   - path: CSV file location.
//   - minVotes: rows need strictly more votes than this.
//   - limit: maximum number of movies returned.
// Returns:
//   - *Adapter: initialized adapter.
func NewAdapter(path string, minVotes, limit int) *Adapter {
	return &Adapter{path: path, minVotes: minVotes, limit: limit}
}

func (a *Adapter) GetSourceID() string {
	return "tmdbcsv"
}

func (a *Adapter) GetDisplayName() string {
	return fmt.Sprintf("TMDB CSV (%s)", a.path)
}

// Load reads, ranks and maps the CSV.
func (a *Adapter) Load(ctx context.Context) (*source.Batch, error) {
	rows, err := LoadRows(a.path)
	if err != nil {
		return nil, err
	}

	selected, stats := Rank(rows, a.minVotes, a.limit)

	log := logger.FromContext(ctx)
	log.WithFields(logger.Fields{
		"rows":       len(rows),
		"skipped":    stats.Skipped,
		"duplicates": stats.Duplicates,
		"selected":   len(selected),
		"min_votes":  a.minVotes,
	}).Info("Ranked dataset")

	movies := make([]domain.Movie, 0, len(selected))
	for _, c := range selected {
		movie, issues := MapCandidate(c)
		for _, issue := range issues {
			log.WithFields(logger.Fields{
				logger.FieldMovieID: movie.ID,
				"field":             issue.Field,
			}).WithError(issue.Err).Debug("Field fell back to default")
		}
		movies = append(movies, movie)
	}

	return &source.Batch{
		Movies:        movies,
		TotalRows:     len(rows),
		SkippedRows:   stats.Skipped,
		DuplicateRows: stats.Duplicates,
	}, nil
}
