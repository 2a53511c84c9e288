package synthetic

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/source"
)

const (
	// PlaceholderImageURL is the one poster every synthetic movie shares.
	PlaceholderImageURL = "https://placehold.co/600x400/png?text=Movie+Poster"

	minRating = 5.0
	maxRating = 9.9
	minYear   = 2015
	maxYear   = 2024
)

// Genres is the pool synthetic genres are drawn from.
var Genres = []string{"Action", "Sci-Fi", "Drama", "Comedy", "Thriller"}

// Generator implements the Source interface with randomly generated movies.
type Generator struct {
	count int
	rng   *rand.Rand
}

// NewGenerator creates a generator of count movies. A zero seed draws a fresh
// one, so two runs differ; any other seed makes the output reproducible.
func NewGenerator(count int, seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{
		count: count,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (g *Generator) GetSourceID() string {
	return "synthetic"
}

func (g *Generator) GetDisplayName() string {
	return fmt.Sprintf("Synthetic (%d movies)", g.count)
}

// Load generates the movies. Ids run from 1 to count.
func (g *Generator) Load(ctx context.Context) (*source.Batch, error) {
	if g.count < 0 {
		return nil, fmt.Errorf("synthetic count must not be negative, got %d", g.count)
	}
	movies := make([]domain.Movie, 0, g.count)
	for i := 1; i <= g.count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		movies = append(movies, g.movie(i))
	}
	return &source.Batch{Movies: movies, TotalRows: len(movies)}, nil
}

func (g *Generator) movie(i int) domain.Movie {
	title := fmt.Sprintf("Super Movie %d", i)
	return domain.Movie{
		ID:          i,
		Title:       title,
		Genre:       Genres[g.rng.IntN(len(Genres))],
		Rating:      domain.NewRating(minRating + g.rng.Float64()*(maxRating-minRating)),
		ReleaseYear: minYear + g.rng.IntN(maxYear-minYear+1),
		Description: fmt.Sprintf("This is a thrilling description for %s. Watch it now!", title),
		ImageURL:    PlaceholderImageURL,
	}
}
