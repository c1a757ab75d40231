package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Storage is the key-value surface durable op logs are built on.
type Storage interface {
	// Has returns true if the key exists.
	Has(ctx context.Context, key string) (bool, error)
	// Get returns the value for the key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores the value under the key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
