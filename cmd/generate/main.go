package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/moviedir/internal/config"
	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
	"github.com/timmy/moviedir/internal/output"
	"github.com/timmy/moviedir/internal/repository"
	"github.com/timmy/moviedir/internal/service"
	"github.com/timmy/moviedir/internal/source"
	"github.com/timmy/moviedir/internal/source/synthetic"
	"github.com/timmy/moviedir/internal/source/tmdbcsv"
	"github.com/timmy/moviedir/internal/storage"
)

type options struct {
	variant    string
	configPath string
	inputPath  string
	outputPath string
}

func main() {
	// Initialize logger first (LOG_* environment)
	appLogger := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)

	var opts options
	flag.StringVar(&opts.variant, "variant", string(domain.VariantEnriched), "Generator variant: synthetic, csv or enriched")
	flag.StringVar(&opts.configPath, "config", "", "Path to config file")
	flag.StringVar(&opts.inputPath, "input", "", "CSV dataset path (overrides source.csv_path)")
	flag.StringVar(&opts.outputPath, "output", "", "Output JSON path (overrides the variant's output path)")
	flag.Parse()

	err := run(appLogger, opts)
	if err != nil {
		appLogger.WithError(err).Error("Generation failed")
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run wires the pipeline and executes one generation. Every resource it opens
// is released before it returns.
func run(appLogger *logger.Logger, opts options) error {
	variant, err := domain.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.inputPath != "" {
		cfg.Source.CSVPath = opts.inputPath
	}
	outPath := cfg.OutputPath(variant)
	if opts.outputPath != "" {
		outPath = opts.outputPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var src source.Source
	switch variant {
	case domain.VariantSynthetic:
		src = synthetic.NewGenerator(cfg.Synthetic.Count, cfg.Synthetic.Seed)
	default:
		src = tmdbcsv.NewAdapter(cfg.Source.CSVPath, cfg.Source.MinVotes, cfg.Source.Limit)
	}

	var enricher *service.Enricher
	if variant == domain.VariantEnriched {
		enricher = service.NewEnricher(service.NewPosterService(&service.PosterConfig{
			BaseURL: cfg.OMDb.BaseURL,
			APIKey:  cfg.OMDb.APIKey,
			Timeout: cfg.OMDb.Timeout,
		}))
	}

	var (
		jobs    service.JobStore
		catalog service.CatalogStore
	)
	if cfg.Database.Enabled {
		db, err := repository.InitDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB instance: %w", err)
		}
		defer sqlDB.Close()
		jobs = repository.NewJobRepository(db)
		catalog = repository.NewCatalogRepository(db)
	}

	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled {
		objectStorage, err = storage.NewS3Storage(ctx, storage.S3ConfigFromConfig(&cfg.Storage))
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	generateService := service.NewGenerateService(
		output.NewWriter(outPath, cfg.FallbackPath(variant)),
		enricher,
		jobs,
		catalog,
		objectStorage,
		appLogger,
		&service.GenerateConfig{
			Variant:      variant,
			SitemapPath:  cfg.Output.SitemapPath,
			SiteBaseURL:  cfg.Output.SiteBaseURL,
			ObjectKey:    cfg.Storage.ObjectKey,
			CacheControl: cfg.Storage.CacheControl,
		},
	)

	stats, err := generateService.Run(ctx, src)
	if err != nil {
		return err
	}

	appLogger.WithFields(logger.Fields{
		logger.FieldJobID: stats.JobID,
		"selected":        stats.SelectedItems,
		"output":          stats.OutputPath,
		"duration":        stats.EndTime.Sub(stats.StartTime).String(),
	}).Info("Movie list generated")
	return nil
}
