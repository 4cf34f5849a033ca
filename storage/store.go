package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("snapshot not found")

// Store is a key-value snapshot store. Each key holds one JSON document:
// a whole collection, or a scalar such as a last-read counter. Save
// overwrites the previous snapshot for the key.
type Store interface {
	Load(ctx context.Context, key string, v interface{}) error
	Save(ctx context.Context, key string, v interface{}) error
}
