package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"devicecore/internal/blob"
	"devicecore/internal/core"
	"devicecore/pkg/domain"
)

// Source supplies the store contents to export. *core.Service satisfies it.
type Source interface {
	Snapshot(ctx context.Context) (core.Snapshot, error)
}

// Artifact describes one stored export.
type Artifact struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Format      Format    `json:"format"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Rows        int       `json:"rows"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Exporter renders reports and writes them to a blob store.
type Exporter struct {
	source    Source
	store     blob.Store
	logger    core.Logger
	now       func() time.Time
	newID     func() string
	urlExpiry time.Duration
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger routes export logging to logger.
func WithLogger(logger core.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the timestamp source used for keys and CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// WithIDFunc overrides artifact id generation.
func WithIDFunc(fn func() string) Option {
	return func(e *Exporter) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithURLExpiry sets the lifetime of presigned download links.
func WithURLExpiry(d time.Duration) Option {
	return func(e *Exporter) { e.urlExpiry = d }
}

// NewExporter builds an exporter reading from source and writing to store.
func NewExporter(source Source, store blob.Store, opts ...Option) *Exporter {
	e := &Exporter{
		source: source,
		store:  store,
		logger: core.NewStdLogger(nil, core.LevelInfo),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export snapshots the source and stores the kind table in format.
func (e *Exporter) Export(ctx context.Context, kind Kind, format Format) (Artifact, error) {
	snap, err := e.source.Snapshot(ctx)
	if err != nil {
		return Artifact{}, fmt.Errorf("snapshot: %w", err)
	}
	table, err := Build(kind, snap)
	if err != nil {
		return Artifact{}, err
	}
	return e.Write(ctx, table, format)
}

// ExportDevices stores the inventory report for an already filtered device
// list, such as a SearchDevices result.
func (e *Exporter) ExportDevices(ctx context.Context, devices []domain.Device, format Format) (Artifact, error) {
	return e.Write(ctx, DevicesReport(devices), format)
}

// Write encodes t and stores it under reports/<date>/<kind>-<id>.<format>.
func (e *Exporter) Write(ctx context.Context, t Table, format Format) (Artifact, error) {
	payload, err := Encode(t, format)
	if err != nil {
		return Artifact{}, err
	}
	now := e.now()
	id := e.newID()
	key := fmt.Sprintf("reports/%s/%s-%s.%s", now.Format(domain.DateLayout), t.Kind, id, format)
	info, err := e.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: format.ContentType(),
		Metadata: map[string]string{
			"kind": string(t.Kind),
			"rows": strconv.Itoa(len(t.Rows)),
		},
	})
	if err != nil {
		e.logger.Error("report export failed", "kind", t.Kind, "key", key, "error", err)
		return Artifact{}, fmt.Errorf("store %s: %w", key, err)
	}
	artifact := Artifact{
		ID:          id,
		Kind:        t.Kind,
		Format:      format,
		Key:         info.Key,
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		Rows:        len(t.Rows),
		CreatedAt:   now,
	}
	if p, ok := e.store.(blob.Presigner); ok {
		url, err := p.PresignGet(ctx, key, e.urlExpiry)
		if err != nil {
			e.logger.Warn("presign failed", "key", key, "error", err)
		} else {
			artifact.URL = url
		}
	}
	e.logger.Info("report exported", "kind", t.Kind, "format", format, "key", key, "rows", artifact.Rows)
	return artifact, nil
}

// List returns every stored report, ordered by key.
func (e *Exporter) List(ctx context.Context) ([]blob.Info, error) {
	return e.store.List(ctx, "reports/")
}
