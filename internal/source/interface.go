package source

import (
	"context"

	"github.com/timmy/moviedir/internal/domain"
)

// Batch is everything a source produced for one run.
type Batch struct {
	Movies        []domain.Movie
	TotalRows     int // rows read from the underlying dataset
	SkippedRows   int // rows that could not be ranked (non-numeric id or votes)
	DuplicateRows int // rows dropped because their id was already selected
}

// Source defines the interface for movie list producers.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	// Parameters: none.
	// Returns:
	//   - string: stable source identifier.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	// Parameters: none.
	// Returns:
	//   - string: display-friendly source name.
	GetDisplayName() string

	// Load produces the ordered movie list.
	// Parameters:
	//   - ctx: context for cancellation.
	// Returns:
	//   - *Batch: movies in output order plus row counters.
	//   - err: non-nil if the underlying dataset is missing or malformed.
	Load(ctx context.Context) (*Batch, error)
}
