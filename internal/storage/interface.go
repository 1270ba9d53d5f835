package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a photo key has no object behind it.
var ErrNotFound = errors.New("object not found")

// Object is a downloaded photo. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStorage keeps meal photos outside the database.
type ObjectStorage interface {
	// Upload stores data under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens the object at key. Missing keys return ErrNotFound.
	Download(ctx context.Context, key string) (*Object, error)

	// GetURL returns the URL a client uses to fetch key.
	GetURL(key string) string

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)
}
