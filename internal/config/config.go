package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/timmy/moviedir/internal/domain"
)

type Config struct {
	Source    SourceConfig    `mapstructure:"source"`
	Synthetic SyntheticConfig `mapstructure:"synthetic"`
	OMDb      OMDbConfig      `mapstructure:"omdb"`
	Output    OutputConfig    `mapstructure:"output"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// SourceConfig points at the movies CSV and the selection rules applied to it.
type SourceConfig struct {
	CSVPath  string `mapstructure:"csv_path"`
	MinVotes int    `mapstructure:"min_votes"`
	Limit    int    `mapstructure:"limit"`
}

type SyntheticConfig struct {
	Count int    `mapstructure:"count"`
	Seed  uint64 `mapstructure:"seed"` // 0 means a fresh random seed per run
}

type OMDbConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds one output path per variant plus the optional sitemap.
type OutputConfig struct {
	SyntheticPath string `mapstructure:"synthetic_path"`
	CSVPath       string `mapstructure:"csv_path"`
	EnrichedPath  string `mapstructure:"enriched_path"`
	FallbackPath  string `mapstructure:"fallback_path"`
	SitemapPath   string `mapstructure:"sitemap_path"`
	SiteBaseURL   string `mapstructure:"site_base_url"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"` // sqlite or postgres
	Path            string        `mapstructure:"path"`
	URL             string        `mapstructure:"url"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return c.URL
	}
	return c.Path
}

type StorageConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Type         string `mapstructure:"type"` // r2, s3, s3compatible; empty to detect from endpoint
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UseSSL       bool   `mapstructure:"use_ssl"`
	Bucket       string `mapstructure:"bucket"`
	Region       string `mapstructure:"region"`
	PublicURL    string `mapstructure:"public_url"`
	ObjectKey    string `mapstructure:"object_key"`
	CacheControl string `mapstructure:"cache_control"`
}

// OutputPath returns the JSON path written by the given variant.
func (c *Config) OutputPath(v domain.Variant) string {
	switch v {
	case domain.VariantSynthetic:
		return c.Output.SyntheticPath
	case domain.VariantCSV:
		return c.Output.CSVPath
	default:
		return c.Output.EnrichedPath
	}
}

// FallbackPath returns the path retried when the primary write fails.
// Only the synthetic variant falls back, matching where its output has always landed.
func (c *Config) FallbackPath(v domain.Variant) string {
	if v == domain.VariantSynthetic {
		return c.Output.FallbackPath
	}
	return ""
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("source.csv_path", "./data/movies_metadata.csv")
	v.SetDefault("source.min_votes", 1000)
	v.SetDefault("source.limit", 250)
	v.SetDefault("synthetic.count", 20)
	v.SetDefault("synthetic.seed", 0)
	v.SetDefault("omdb.base_url", "http://www.omdbapi.com")
	v.SetDefault("omdb.api_key", "")
	v.SetDefault("omdb.timeout", 5*time.Second)
	v.SetDefault("output.synthetic_path", "src/data.json")
	v.SetDefault("output.csv_path", "app/data.json")
	v.SetDefault("output.enriched_path", "app/data.json")
	v.SetDefault("output.fallback_path", "data.json")
	v.SetDefault("output.sitemap_path", "")
	v.SetDefault("output.site_base_url", "https://movie-app-chi-dun.vercel.app")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/moviedir.db")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.type", "")
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "moviedir")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.object_key", "data.json")
	v.SetDefault("storage.cache_control", "public, max-age=300")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Bind environment variables explicitly for sensitive data
	v.BindEnv("omdb.api_key", "OMDB_API_KEY")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("storage.endpoint", "S3_ENDPOINT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Synthetic.Count < 0:
		return fmt.Errorf("invalid config: synthetic.count must not be negative, got %d", c.Synthetic.Count)
	case c.Source.Limit < 0:
		return fmt.Errorf("invalid config: source.limit must not be negative, got %d", c.Source.Limit)
	case c.Source.MinVotes < 0:
		return fmt.Errorf("invalid config: source.min_votes must not be negative, got %d", c.Source.MinVotes)
	case c.OMDb.Timeout < 0:
		return fmt.Errorf("invalid config: omdb.timeout must not be negative, got %s", c.OMDb.Timeout)
	}
	return nil
}
