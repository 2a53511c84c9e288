package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
	"github.com/timmy/moviedir/internal/output"
	"github.com/timmy/moviedir/internal/source"
	"github.com/timmy/moviedir/internal/storage"
)

// JobStore persists generation run records.
type JobStore interface {
	Create(ctx context.Context, job *domain.GenerationJob) error
	Update(ctx context.Context, job *domain.GenerationJob) error
}

// CatalogStore mirrors the output list.
type CatalogStore interface {
	ReplaceAll(ctx context.Context, jobID string, movies []domain.Movie) error
}

// GenerateService runs one variant end to end: load, enrich, write, then
// feed the optional sinks.
type GenerateService struct {
	writer   *output.Writer
	enricher *Enricher
	jobs     JobStore
	catalog  CatalogStore
	storage  storage.ObjectStorage
	logger   *logger.Logger
	cfg      GenerateConfig
}

// GenerateConfig holds configuration for the generate service
type GenerateConfig struct {
	Variant      domain.Variant
	SitemapPath  string // empty disables the sitemap
	SiteBaseURL  string
	ObjectKey    string
	CacheControl string // Cache-Control of the published object
}

// NewGenerateService creates a new generate service.
// enricher, jobs, catalog and objectStorage may be nil; the matching step is then skipped.
func NewGenerateService(
	writer *output.Writer,
	enricher *Enricher,
	jobs JobStore,
	catalog CatalogStore,
	objectStorage storage.ObjectStorage,
	log *logger.Logger,
	cfg *GenerateConfig,
) *GenerateService {
	if log == nil {
		log = logger.GetDefault()
	}
	return &GenerateService{
		writer:   writer,
		enricher: enricher,
		jobs:     jobs,
		catalog:  catalog,
		storage:  objectStorage,
		logger:   log,
		cfg:      *cfg,
	}
}

// GenerateStats holds statistics for a generation run
type GenerateStats struct {
	JobID         string
	Variant       domain.Variant
	TotalRows     int
	SkippedRows   int
	DuplicateRows int
	SelectedItems int
	EnrichedItems int
	FallbackItems int
	OutputPath    string
	PublishedURL  string
	StartTime     time.Time
	EndTime       time.Time
}

// Run generates the movie list from src and writes it.
// Parameters:
//   - ctx: context for cancellation; also carries the run logger.
//   - src: producer of the ordered movie list.
// Returns:
//   - *GenerateStats: counters of the run, also on failure.
//   - error: non-nil if any enabled step failed.
func (s *GenerateService) Run(ctx context.Context, src source.Source) (*GenerateStats, error) {
	stats := &GenerateStats{
		JobID:     uuid.New().String(),
		Variant:   s.cfg.Variant,
		StartTime: time.Now(),
	}

	ctx = s.logger.WithContext(ctx)
	ctx = logger.SetJobID(ctx, stats.JobID)
	ctx = logger.WithField(ctx, logger.FieldVariant, string(s.cfg.Variant))
	log := logger.FromContext(ctx)

	log.WithField("source", src.GetSourceID()).Info("Starting generation")

	var job *domain.GenerationJob
	if s.jobs != nil {
		job = &domain.GenerationJob{
			ID:        stats.JobID,
			Variant:   s.cfg.Variant,
			Status:    domain.JobStatusRunning,
			StartedAt: &stats.StartTime,
		}
		if err := s.jobs.Create(ctx, job); err != nil {
			return stats, fmt.Errorf("failed to create generation job: %w", err)
		}
	}

	fail := func(err error) (*GenerateStats, error) {
		stats.EndTime = time.Now()
		if job != nil {
			s.finishJob(ctx, job, stats, err)
		}
		return stats, err
	}

	batch, err := src.Load(logger.SetComponent(ctx, "source"))
	if err != nil {
		return fail(fmt.Errorf("failed to load %s: %w", src.GetDisplayName(), err))
	}
	stats.TotalRows = batch.TotalRows
	stats.SkippedRows = batch.SkippedRows
	stats.DuplicateRows = batch.DuplicateRows
	stats.SelectedItems = len(batch.Movies)

	if batch.SkippedRows > 0 {
		logger.With(logger.Fields{"skipped": batch.SkippedRows}).
			Warn(ctx, "Skipped %d rows without numeric id or votes", batch.SkippedRows)
	}
	if batch.DuplicateRows > 0 {
		logger.With(logger.Fields{"duplicates": batch.DuplicateRows}).
			Warn(ctx, "Dropped %d rows repeating an already selected id", batch.DuplicateRows)
	}

	movies := batch.Movies
	if s.enricher != nil {
		enrichStats, err := s.enricher.Enrich(logger.SetComponent(ctx, "enrich"), movies)
		stats.EnrichedItems = enrichStats.Enriched
		stats.FallbackItems = enrichStats.Fallback
		if err != nil {
			return fail(fmt.Errorf("poster enrichment interrupted: %w", err))
		}
	}

	path, data, err := s.writer.Write(movies)
	if err != nil {
		return fail(err)
	}
	stats.OutputPath = path

	if s.cfg.SitemapPath != "" {
		if err := output.WriteSitemap(s.cfg.SitemapPath, s.cfg.SiteBaseURL, movies, stats.StartTime); err != nil {
			return fail(err)
		}
		log.WithField("path", s.cfg.SitemapPath).Debug("Sitemap written")
	}

	if s.catalog != nil {
		if err := s.catalog.ReplaceAll(logger.SetComponent(ctx, "catalog"), stats.JobID, movies); err != nil {
			return fail(fmt.Errorf("failed to mirror catalog: %w", err))
		}
	}

	if s.storage != nil {
		url, err := storage.Publish(logger.SetComponent(ctx, "publish"), s.storage, s.cfg.ObjectKey, data, s.cfg.CacheControl)
		if err != nil {
			return fail(fmt.Errorf("failed to publish %s: %w", s.cfg.ObjectKey, err))
		}
		stats.PublishedURL = url
		log.WithField("url", url).Info("Published movie list")
	}

	stats.EndTime = time.Now()
	if job != nil {
		s.finishJob(ctx, job, stats, nil)
	}

	logger.With(logger.Fields{
		"path":     stats.OutputPath,
		"enriched": stats.EnrichedItems,
		"fallback": stats.FallbackItems,
	}).
		WithCount(stats.SelectedItems).
		WithSize(len(data)).
		WithDuration(stats.EndTime.Sub(stats.StartTime).Milliseconds()).
		Info(ctx, "Generation completed")

	return stats, nil
}

// finishJob records the outcome of the run. A failure to save it is logged, not returned.
func (s *GenerateService) finishJob(ctx context.Context, job *domain.GenerationJob, stats *GenerateStats, runErr error) {
	job.TotalRows = stats.TotalRows
	job.SkippedRows = stats.SkippedRows
	job.DuplicateRows = stats.DuplicateRows
	job.SelectedItems = stats.SelectedItems
	job.EnrichedItems = stats.EnrichedItems
	job.FallbackItems = stats.FallbackItems
	job.OutputPath = stats.OutputPath
	completed := stats.EndTime
	job.CompletedAt = &completed
	if runErr != nil {
		job.Status = domain.JobStatusFailed
		job.ErrorLog = runErr.Error()
	} else {
		job.Status = domain.JobStatusCompleted
	}

	// The run context may already be cancelled; the record is still written.
	if err := s.jobs.Update(context.WithoutCancel(ctx), job); err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to update generation job")
	}
}
