package core

import (
	"context"
	"testing"
	"time"

	"devicecore/pkg/domain"
)

var testNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return testNow })
}

func newTestService(t *testing.T, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{WithClock(fixedClock())}, opts...)
	return NewInMemoryService(NewDefaultRulesEngine(), opts...)
}

// seedDevice creates facility FAC1 "Acme" with device DEV1 and returns both.
func seedDevice(t *testing.T, svc *Service) (Facility, Device) {
	t.Helper()
	ctx := context.Background()
	fac, _, err := svc.CreateFacility(ctx, domain.FacilityInput{ID: "FAC1", Name: "Acme", City: "Pune"})
	if err != nil {
		t.Fatalf("create facility: %v", err)
	}
	dev, _, err := svc.CreateDevice(ctx, domain.DeviceInput{
		ID:           "DEV1",
		Type:         "Ventilator",
		Model:        "V60",
		SerialNumber: "SN-1",
		FacilityID:   "FAC1",
		Status:       domain.DeviceOnline,
		BatteryLevel: 80,
	})
	if err != nil {
		t.Fatalf("create device: %v", err)
	}
	return fac, dev
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

type captureAuditRecorder struct {
	entries []AuditEntry
}

func (c *captureAuditRecorder) Record(_ context.Context, entry AuditEntry) {
	c.entries = append(c.entries, entry)
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	ended []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	return ctx, captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

type logLine struct {
	level string
	msg   string
	args  []any
}

type captureLogger struct {
	lines []logLine
}

func (c *captureLogger) Debug(msg string, args ...any) { c.add("debug", msg, args) }
func (c *captureLogger) Info(msg string, args ...any)  { c.add("info", msg, args) }
func (c *captureLogger) Warn(msg string, args ...any)  { c.add("warn", msg, args) }
func (c *captureLogger) Error(msg string, args ...any) { c.add("error", msg, args) }

func (c *captureLogger) add(level, msg string, args []any) {
	c.lines = append(c.lines, logLine{level: level, msg: msg, args: args})
}

func (c *captureLogger) count(level string) int {
	n := 0
	for _, l := range c.lines {
		if l.level == level {
			n++
		}
	}
	return n
}
