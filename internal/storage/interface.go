package storage

import "context"

// Object is one document to publish.
type Object struct {
	Key          string
	Body         []byte
	ContentType  string
	CacheControl string // empty leaves the header unset
}

// ObjectStorage is the bucket the movie list is published to.
type ObjectStorage interface {
	// EnsureBucket creates the bucket if it is missing
	EnsureBucket(ctx context.Context) error

	// Put stores obj under obj.Key, replacing any previous version
	Put(ctx context.Context, obj Object) error

	// GetURL returns the URL clients fetch the object from
	GetURL(key string) string
}
