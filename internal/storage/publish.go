package storage

import (
	"context"
	"fmt"
	"strings"
)

const jsonContentType = "application/json; charset=utf-8"

// DefaultCacheControl keeps CDN copies of the movie list short-lived.
const DefaultCacheControl = "public, max-age=300"

// Publish stores the JSON document under key and returns its public URL.
// The bucket is created first when the backend allows it.
// Parameters:
//   - ctx: context for cancellation.
//   - store: target bucket.
//   - key: object key; a leading slash is dropped.
//   - data: encoded movie list.
//   - cacheControl: Cache-Control header; empty uses DefaultCacheControl.
// Returns:
//   - string: URL clients fetch the document from.
//   - error: non-nil if the key is empty or the bucket check or upload fails.
func Publish(ctx context.Context, store ObjectStorage, key string, data []byte, cacheControl string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", fmt.Errorf("object key is empty")
	}
	if cacheControl == "" {
		cacheControl = DefaultCacheControl
	}

	if err := store.EnsureBucket(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure bucket: %w", err)
	}
	err := store.Put(ctx, Object{
		Key:          key,
		Body:         data,
		ContentType:  jsonContentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return "", err
	}
	return store.GetURL(key), nil
}
