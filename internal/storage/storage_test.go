package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/moviedir/internal/config"
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"localhost:9000", "localhost:9000"},
		{"http://localhost:9000", "localhost:9000"},
		{"https://abc.r2.cloudflarestorage.com/bucket/path", "abc.r2.cloudflarestorage.com"},
		{" https://s3.amazonaws.com/ ", "s3.amazonaws.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, endpointHost(tt.in), tt.in)
	}
}

func TestDetectProvider(t *testing.T) {
	assert.Equal(t, ProviderR2, DetectProvider("abc.R2.cloudflarestorage.com"))
	assert.Equal(t, ProviderS3, DetectProvider("s3.us-west-2.amazonaws.com"))
	assert.Equal(t, ProviderS3Compatible, DetectProvider("localhost:9000"))
}

func TestResolveRegion(t *testing.T) {
	assert.Equal(t, "auto", resolveRegion(ProviderR2, ""))
	assert.Equal(t, "us-east-1", resolveRegion(ProviderS3Compatible, ""))
	assert.Equal(t, "eu-west-1", resolveRegion(ProviderS3, "eu-west-1"))
}

func TestNewS3StorageDetectsProvider(t *testing.T) {
	store, err := NewS3Storage(context.Background(), &S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "moviedir",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderS3Compatible, store.provider)
	assert.Equal(t, "us-east-1", store.region)
	assert.Equal(t, "http://localhost:9000/moviedir/data.json", store.GetURL("data.json"))
}

func TestNewS3StoragePublicURL(t *testing.T) {
	store, err := NewS3Storage(context.Background(), &S3Config{
		Endpoint:  "https://abc.r2.cloudflarestorage.com",
		UseSSL:    true,
		Bucket:    "moviedir",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderR2, store.provider)
	assert.Equal(t, "auto", store.region)
	assert.Equal(t, "https://cdn.example.com/data.json", store.GetURL("data.json"))
}

func TestNewS3StorageRejectsMissingSettings(t *testing.T) {
	_, err := NewS3Storage(context.Background(), &S3Config{Bucket: "moviedir"})
	require.Error(t, err)

	_, err = NewS3Storage(context.Background(), &S3Config{Endpoint: "localhost:9000"})
	require.Error(t, err)
}

func TestS3ConfigFromConfig(t *testing.T) {
	cfg := S3ConfigFromConfig(&config.StorageConfig{
		Type:     "r2",
		Endpoint: "e",
		Bucket:   "b",
	})
	assert.Equal(t, ProviderR2, cfg.Provider)
	assert.Equal(t, "e", cfg.Endpoint)
	assert.Equal(t, "b", cfg.Bucket)
}

func TestPutObjectInput(t *testing.T) {
	in := putObjectInput("moviedir", Object{
		Key:          "data.json",
		Body:         []byte("[]\n"),
		ContentType:  jsonContentType,
		CacheControl: DefaultCacheControl,
	})
	assert.Equal(t, "moviedir", aws.ToString(in.Bucket))
	assert.Equal(t, "data.json", aws.ToString(in.Key))
	assert.EqualValues(t, 3, aws.ToInt64(in.ContentLength))
	assert.Equal(t, jsonContentType, aws.ToString(in.ContentType))
	assert.Equal(t, DefaultCacheControl, aws.ToString(in.CacheControl))

	in = putObjectInput("moviedir", Object{Key: "data.json"})
	assert.Nil(t, in.CacheControl)
}

type recordedRequest struct {
	method       string
	path         string
	cacheControl string
	contentType  string
}

func TestS3StorageAgainstEndpoint(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			method:       r.Method,
			path:         r.URL.Path,
			cacheControl: r.Header.Get("Cache-Control"),
			contentType:  r.Header.Get("Content-Type"),
		})
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewS3Storage(context.Background(), &S3Config{
		Endpoint:  srv.URL,
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "moviedir",
	})
	require.NoError(t, err)

	url, err := Publish(context.Background(), store, "data.json", []byte("[]"), "")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/moviedir/data.json", url)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodHead, requests[0].method)
	assert.Equal(t, "/moviedir", requests[0].path)
	assert.Equal(t, http.MethodPut, requests[1].method)
	assert.Equal(t, "/moviedir/data.json", requests[1].path)
	assert.Equal(t, DefaultCacheControl, requests[1].cacheControl)
	assert.Equal(t, jsonContentType, requests[1].contentType)
}

type fakeStore struct {
	ensureErr error
	putErr    error
	objects   []Object
}

func (f *fakeStore) EnsureBucket(ctx context.Context) error { return f.ensureErr }

func (f *fakeStore) Put(ctx context.Context, obj Object) error {
	f.objects = append(f.objects, obj)
	return f.putErr
}

func (f *fakeStore) GetURL(key string) string { return "https://cdn.example.com/" + key }

func TestPublish(t *testing.T) {
	store := &fakeStore{}
	url, err := Publish(context.Background(), store, "/data.json", []byte("[]"), "no-cache")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/data.json", url)
	require.Len(t, store.objects, 1)
	assert.Equal(t, Object{
		Key:          "data.json",
		Body:         []byte("[]"),
		ContentType:  jsonContentType,
		CacheControl: "no-cache",
	}, store.objects[0])
}

func TestPublishDefaultsCacheControl(t *testing.T) {
	store := &fakeStore{}
	_, err := Publish(context.Background(), store, "data.json", []byte("[]"), "")
	require.NoError(t, err)
	require.Len(t, store.objects, 1)
	assert.Equal(t, DefaultCacheControl, store.objects[0].CacheControl)
}

func TestPublishErrors(t *testing.T) {
	_, err := Publish(context.Background(), &fakeStore{}, " ", []byte("[]"), "")
	require.Error(t, err)

	bucketErr := errors.New("no bucket")
	store := &fakeStore{ensureErr: bucketErr}
	_, err = Publish(context.Background(), store, "data.json", []byte("[]"), "")
	require.ErrorIs(t, err, bucketErr)
	assert.Empty(t, store.objects)

	putErr := errors.New("denied")
	_, err = Publish(context.Background(), &fakeStore{putErr: putErr}, "data.json", []byte("[]"), "")
	require.ErrorIs(t, err, putErr)
}
