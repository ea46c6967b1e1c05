// Package storage is a small key-value layer holding opaque blobs, the
// server-side stand-in for browser local storage.
package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by backends that cannot be reached at all.
var ErrUnavailable = errors.New("storage unavailable")

// Store reads and writes whole values by key. A missing key is reported as
// found == false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Watcher is implemented by backends that can report changes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context, key string, onChange func()) error
}

// Unavailable is a Store whose every call fails. It is used when no backend
// could be opened so the catalog keeps working from memory.
type Unavailable struct{}

func (Unavailable) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, ErrUnavailable
}

func (Unavailable) Set(ctx context.Context, key string, value []byte) error {
	return ErrUnavailable
}

func (Unavailable) Delete(ctx context.Context, key string) error {
	return ErrUnavailable
}
