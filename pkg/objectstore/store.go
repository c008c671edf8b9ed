package objectstore

import (
	"context"
	"errors"
)

// ErrNoSuchKey is returned when an object does not exist.
var ErrNoSuchKey = errors.New("no such key")

// Store abstracts the object bucket
type Store interface {
	// Get returns the object stored under key.
	// Returns ErrNoSuchKey if the object doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte) error

	// Remove deletes the object stored under key.
	Remove(ctx context.Context, key string) error
}
