package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/timmy/moviedir/internal/domain"
	"gorm.io/gorm"
)

const catalogBatchSize = 100

// CatalogRepository mirrors the generated movie list into the movies table.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ReplaceAll swaps the table contents for movies in one transaction, keeping
// their order in the position column.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobID: run that produced the list.
//   - movies: ranked output list.
// Returns:
//   - error: non-nil if the delete or insert fails; the table is then unchanged.
func (r *CatalogRepository) ReplaceAll(ctx context.Context, jobID string, movies []domain.Movie) error {
	now := time.Now()
	entries := make([]domain.CatalogEntry, len(movies))
	for i, m := range movies {
		entries[i] = domain.CatalogEntry{
			Position:  i + 1,
			JobID:     jobID,
			Movie:     m,
			CreatedAt: now,
		}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.CatalogEntry{}).Error; err != nil {
			return fmt.Errorf("failed to clear catalog: %w", err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(entries, catalogBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert catalog: %w", err)
		}
		return nil
	})
}

// List returns the mirrored catalog in output order.
func (r *CatalogRepository) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	err := r.db.WithContext(ctx).Order("position ASC").Find(&entries).Error
	return entries, err
}

// Count returns the number of mirrored movies.
func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CatalogEntry{}).Count(&count).Error
	return count, err
}
