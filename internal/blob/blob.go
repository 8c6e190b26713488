// Package blob is the entry point for export artifact storage. Callers depend
// on Store and obtain one through Open; backend packages stay private to it.
package blob

import (
	"context"
	"fmt"

	"devicecore/internal/blob/core"
	fsstore "devicecore/internal/infra/blob/fs"
	memorystore "devicecore/internal/infra/blob/memory"
	s3store "devicecore/internal/infra/blob/s3"
)

type (
	// Driver names a backend.
	Driver = core.Driver
	// PutOptions configures a write.
	PutOptions = core.PutOptions
	// Info describes a stored artifact.
	Info = core.Info
	// Store is implemented by every backend.
	Store = core.Store
	// Presigner is implemented by backends that issue download links.
	Presigner = core.Presigner
	// S3Config configures the S3 backend.
	S3Config = s3store.Config
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrNotFound   = core.ErrNotFound
	ErrExists     = core.ErrExists
	ErrInvalidKey = core.ErrInvalidKey
)

// Options selects and configures a backend.
type Options struct {
	Driver Driver
	// FSRoot is the directory for the fs driver.
	FSRoot string
	S3     S3Config
}

// Open builds the backend named by opts.Driver. An empty driver selects fs.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(opts.FSRoot)
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", opts.Driver)
	}
}

// NewMemory returns an in-memory store.
func NewMemory() Store { return memorystore.New() }

// NewFilesystem returns a store rooted at root.
func NewFilesystem(root string) (Store, error) { return fsstore.New(root) }

// NewS3 returns a store for one S3 bucket.
func NewS3(ctx context.Context, cfg S3Config) (Store, error) { return s3store.New(ctx, cfg) }
