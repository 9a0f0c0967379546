package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrKeyExists is returned by Put when the key is already occupied.
// Storage keys are generated to be collision-free, so hitting this
// means key generation is broken, not that a retry is in order.
var ErrKeyExists = errors.New("storage key already exists")

// ObjectStore is the durable blob backend. It has no notion of
// ownership; callers must resolve ownership against file metadata
// before touching it.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
