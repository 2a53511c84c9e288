package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/moviedir/internal/config"
	"github.com/timmy/moviedir/internal/domain"
	"github.com/timmy/moviedir/internal/logger"
	"github.com/timmy/moviedir/internal/repository"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunSyntheticWithDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	dbPath := filepath.Join(dir, "moviedir.db")
	cfgPath := writeConfig(t, dir, `
synthetic:
  count: 5
  seed: 9
database:
  enabled: true
  driver: sqlite
  path: `+dbPath+`
`)
	outPath := filepath.Join(dir, "out", "data.json")

	err := run(logger.GetDefault(), options{
		variant:    "synthetic",
		configPath: cfgPath,
		outputPath: outPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var movies []domain.Movie
	require.NoError(t, json.Unmarshal(data, &movies))
	assert.Len(t, movies, 5)

	// run released its handle; a fresh connection sees the committed rows.
	db, err := repository.InitDB(&config.DatabaseConfig{Driver: "sqlite", Path: dbPath})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	count, err := repository.NewCatalogRepository(db).Count(t.Context())
	require.NoError(t, err)
	assert.EqualValues(t, 5, count)

	jobs, err := repository.NewJobRepository(db).ListRecent(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.JobStatusCompleted, jobs[0].Status)
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	err := run(logger.GetDefault(), options{variant: "posters"})
	require.Error(t, err)

	err = run(logger.GetDefault(), options{
		variant:    "csv",
		configPath: writeConfig(t, dir, "source:\n  csv_path: "+filepath.Join(dir, "missing.csv")+"\n"),
		outputPath: filepath.Join(dir, "data.json"),
	})
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "data.json"))

	err = run(logger.GetDefault(), options{
		variant:    "synthetic",
		configPath: writeConfig(t, dir, "synthetic:\n  count: -1\n"),
	})
	require.Error(t, err)
}
