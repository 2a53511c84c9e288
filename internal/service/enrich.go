package service

import (
	"context"
	"errors"

	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
)

// PosterLookup finds a poster URL for a movie.
type PosterLookup interface {
	Lookup(ctx context.Context, title string, year int) (string, error)
}

// Enricher replaces placeholder images with looked-up posters, one request per movie.
type Enricher struct {
	lookup PosterLookup
}

// EnrichStats counts how each movie's image was resolved.
type EnrichStats struct {
	Enriched int
	Fallback int
}

// NewEnricher creates an enricher backed by lookup.
func NewEnricher(lookup PosterLookup) *Enricher {
	return &Enricher{lookup: lookup}
}

// Enrich sets ImageURL on every movie in place. A failed lookup never aborts
// the run: the movie gets the placeholder seeded by its id. Only cancellation
// of ctx stops the loop early.
func (e *Enricher) Enrich(ctx context.Context, movies []domain.Movie) (EnrichStats, error) {
	var stats EnrichStats
	log := logger.FromContext(ctx)
	warnedDisabled := false

	for i := range movies {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		m := &movies[i]

		poster, err := e.lookup.Lookup(ctx, m.Title, m.ReleaseYear)
		if err == nil {
			poster, err = WithUniqueToken(poster, m.ID)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			switch {
			case errors.Is(err, ErrLookupDisabled):
				if !warnedDisabled {
					log.Warn("No OMDb API key configured, using placeholder posters")
					warnedDisabled = true
				}
			case errors.Is(err, ErrPosterNotFound):
				log.WithFields(logger.Fields{
					logger.FieldMovieID: m.ID,
					"title":             m.Title,
				}).WithError(err).Warn("No poster found, using placeholder")
			default:
				log.WithFields(logger.Fields{
					logger.FieldMovieID: m.ID,
					"title":             m.Title,
				}).WithError(err).Warn("Poster lookup failed, using placeholder")
			}
			m.ImageURL = domain.PlaceholderImageURL(m.ID)
			stats.Fallback++
			continue
		}

		m.ImageURL = poster
		stats.Enriched++
	}

	return stats, nil
}
