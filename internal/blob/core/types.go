// Package core defines the artifact storage contract shared by the blob
// backends.
package core

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver names a blob backend.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local directory (default)
	DriverS3         Driver = "s3"     // S3 or MinIO
	DriverMemory     Driver = "memory" // process memory (tests, dry runs)
)

// PutOptions carries optional object attributes.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describes a stored artifact.
type Info struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size_bytes"`
	ContentType  string            `json:"content_type,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"last_modified"`
}

// Store is a create-only key/value object store for exported artifacts.
type Store interface {
	// Put writes a new object and fails with ErrExists if key is taken.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	// Get returns the object; the caller closes the reader.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Head(ctx context.Context, key string) (Info, error)
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns objects under prefix sorted by key.
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// Presigner is implemented by backends that can hand out time-limited
// download links.
type Presigner interface {
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

var (
	// ErrNotFound reports a missing key.
	ErrNotFound = errors.New("blob: not found")
	// ErrExists reports a Put to a taken key.
	ErrExists = errors.New("blob: already exists")
	// ErrInvalidKey reports an empty, absolute or escaping key.
	ErrInvalidKey = errors.New("blob: invalid key")
)

// CloneMetadata copies a metadata map; nil stays nil.
func CloneMetadata(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
