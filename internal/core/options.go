package core

import (
	"context"
	"time"

	"devicecore/internal/derive"
	"devicecore/pkg/domain"
)

// Clock supplies the current time to the service.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function into a Clock. A nil ClockFunc reports the UTC wall clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f()
}

// Logger receives service diagnostics as a message plus key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// AuditStatus reports the outcome of an audited operation.
type AuditStatus string

// Audit outcomes.
const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry captures one facade mutation.
type AuditEntry struct {
	Operation string            `json:"operation"`
	Entity    domain.EntityType `json:"entity"`
	Action    domain.Action     `json:"action"`
	EntityID  string            `json:"entity_id,omitempty"`
	Status    AuditStatus       `json:"status"`
	Error     string            `json:"error,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

// MetricsRecorder observes operation outcomes and latency.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// Tracer starts a span per service operation.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan is closed with the operation's error, nil on success.
type TraceSpan interface {
	End(err error)
}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// ViewDefaults holds the limits applied when a derived view is requested
// with a non-positive argument.
type ViewDefaults struct {
	ExpiryWindowDays  int
	AlertSummaryLimit int
	ActivityLimit     int
}

func defaultViewDefaults() ViewDefaults {
	return ViewDefaults{
		ExpiryWindowDays:  derive.DefaultExpiryWindowDays,
		AlertSummaryLimit: derive.DefaultAlertSummaryLimit,
		ActivityLimit:     derive.DefaultActivityLimit,
	}
}

// ServiceOption customizes a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	clock   Clock
	logger  Logger
	audit   AuditRecorder
	metrics MetricsRecorder
	tracer  Tracer
	ids     *domain.IDGenerator
	views   ViewDefaults
}

func defaultServiceOptions() serviceOptions {
	return serviceOptions{
		clock:   ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:  noopLogger{},
		audit:   noopAuditRecorder{},
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		views:   defaultViewDefaults(),
	}
}

// WithClock overrides the clock used for create-time stamps, id tokens and
// the "today" of date-window views.
func WithClock(clock Clock) ServiceOption {
	return func(o *serviceOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger installs a logger.
func WithLogger(logger Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAuditRecorder installs an audit sink.
func WithAuditRecorder(recorder AuditRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.audit = recorder
		}
	}
}

// WithMetricsRecorder installs a metrics sink.
func WithMetricsRecorder(recorder MetricsRecorder) ServiceOption {
	return func(o *serviceOptions) {
		if recorder != nil {
			o.metrics = recorder
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(o *serviceOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithIDGenerator replaces the generator used for records created without an id.
func WithIDGenerator(ids *domain.IDGenerator) ServiceOption {
	return func(o *serviceOptions) {
		if ids != nil {
			o.ids = ids
		}
	}
}

// WithViewDefaults overrides the default view limits. Non-positive fields
// keep their built-in values.
func WithViewDefaults(v ViewDefaults) ServiceOption {
	return func(o *serviceOptions) {
		if v.ExpiryWindowDays > 0 {
			o.views.ExpiryWindowDays = v.ExpiryWindowDays
		}
		if v.AlertSummaryLimit > 0 {
			o.views.AlertSummaryLimit = v.AlertSummaryLimit
		}
		if v.ActivityLimit > 0 {
			o.views.ActivityLimit = v.ActivityLimit
		}
	}
}
