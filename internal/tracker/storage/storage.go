// Package storage owns the raw file bytes behind upload records. The store
// keeps metadata only; blobs live here.
package storage

import (
	"context"
	"io"
)

// Saver persists the raw bytes of an incoming file and returns an opaque
// location usable with Release later.
type Saver interface {
	Save(ctx context.Context, fileName string, r io.Reader) (location string, written int64, err error)
}

// Releaser frees the bytes behind a previously saved location. Release of an
// already-released location must succeed; deletes are best-effort and may be
// retried.
type Releaser interface {
	Release(ctx context.Context, location string) error
}

type Storage interface {
	Saver
	Releaser
}

// Nop discards saved bytes and releases nothing. Useful in tests.
type Nop struct{}

func (Nop) Save(_ context.Context, fileName string, r io.Reader) (string, int64, error) {
	n, err := io.Copy(io.Discard, r)
	return "nop://" + fileName, n, err
}

func (Nop) Release(context.Context, string) error { return nil }
