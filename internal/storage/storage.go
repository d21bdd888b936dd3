package storage

import (
	"context"
	"errors"
	"io"
)

// ErrPut wraps any backend failure so callers can classify it without
// knowing which store implementation is wired in.
var ErrPut = errors.New("document store put failed")

// DocumentStore is durable storage for uploaded files. Paths are
// caller-chosen keys; a put to an existing path overwrites it. A
// bucket-backed implementation can replace the local one without
// touching the onboarding engine.
type DocumentStore interface {
	Put(ctx context.Context, path string, r io.Reader, size int64) error
	Remove(ctx context.Context, path string) error
}
