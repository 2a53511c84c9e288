package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/timmy/moviedir/internal/config"
)

// Provider names the S3-compatible backend behind an endpoint.
type Provider string

const (
	ProviderR2           Provider = "r2"
	ProviderS3           Provider = "s3"
	ProviderS3Compatible Provider = "s3compatible"
)

// S3Config holds the connection settings of the publish bucket.
type S3Config struct {
	Provider  Provider // empty: detected from Endpoint
	Endpoint  string   // host[:port], scheme and path are ignored
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string // empty: "auto" on R2, us-east-1 elsewhere
	PublicURL string // CDN or r2.dev prefix; empty uses the endpoint URL
}

// S3ConfigFromConfig converts the storage section of the application config.
func S3ConfigFromConfig(cfg *config.StorageConfig) *S3Config {
	return &S3Config{
		Provider:  Provider(cfg.Type),
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		PublicURL: cfg.PublicURL,
	}
}

// S3Storage publishes objects to one bucket over path-style addressing.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	provider  Provider
	baseURL   string
	publicURL string
	region    string
}

// NewS3Storage creates the client for cfg.
// Parameters:
//   - ctx: context for loading the AWS configuration.
//   - cfg: endpoint, credentials and bucket.
// Returns:
//   - *S3Storage: ready client; no request is made yet.
//   - error: non-nil if the endpoint or bucket is missing or the AWS config fails to load.
func NewS3Storage(ctx context.Context, cfg *S3Config) (*S3Storage, error) {
	host := endpointHost(cfg.Endpoint)
	if host == "" {
		return nil, fmt.Errorf("storage endpoint is empty")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("storage bucket is empty")
	}

	provider := cfg.Provider
	if provider == "" {
		provider = DetectProvider(host)
	}
	region := resolveRegion(provider, cfg.Region)

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	baseURL := scheme + "://" + host

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(baseURL)
		o.UsePathStyle = true
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		provider:  provider,
		baseURL:   baseURL,
		publicURL: strings.TrimSuffix(strings.TrimSpace(cfg.PublicURL), "/"),
		region:    region,
	}, nil
}

// DetectProvider guesses the backend from its endpoint host.
func DetectProvider(endpoint string) Provider {
	host := strings.ToLower(endpoint)
	switch {
	case strings.HasSuffix(host, ".r2.cloudflarestorage.com"):
		return ProviderR2
	case strings.HasSuffix(host, ".amazonaws.com"):
		return ProviderS3
	default:
		return ProviderS3Compatible
	}
}

// endpointHost strips scheme, path and surrounding space from an endpoint.
func endpointHost(endpoint string) string {
	e := strings.TrimSpace(endpoint)
	if _, rest, ok := strings.Cut(e, "://"); ok {
		e = rest
	}
	host, _, _ := strings.Cut(e, "/")
	return host
}

func resolveRegion(p Provider, region string) string {
	if region != "" {
		return region
	}
	if p == ProviderR2 {
		return "auto"
	}
	return "us-east-1"
}

// EnsureBucket creates the bucket when the endpoint reports it missing.
// R2 buckets cannot be created through the S3 API.
func (s *S3Storage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}

	if s.provider == ProviderR2 {
		return fmt.Errorf("bucket %s does not exist, please create it in R2 dashboard", s.bucket)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put uploads obj in a single request.
func (s *S3Storage) Put(ctx context.Context, obj Object) error {
	if _, err := s.client.PutObject(ctx, putObjectInput(s.bucket, obj)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", obj.Key, err)
	}
	return nil
}

func putObjectInput(bucket string, obj Object) *s3.PutObjectInput {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(obj.ContentType),
	}
	if obj.CacheControl != "" {
		in.CacheControl = aws.String(obj.CacheControl)
	}
	return in
}

// GetURL returns the public URL of key: under the public prefix when one is
// configured, otherwise the path-style endpoint URL.
func (s *S3Storage) GetURL(key string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + key
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, key)
}
