// Package otel adapts OpenTelemetry tracing to the service Tracer hook.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"devicecore/internal/core"
)

const instrumentationName = "devicecore/internal/core"

// Options configures Setup.
type Options struct {
	ServiceName string
	// Endpoint is the OTLP/HTTP collector URL. Empty disables export.
	Endpoint string
	Enabled  bool
}

// Setup installs a global tracer provider exporting to opts.Endpoint.
//
// When tracing is disabled or no endpoint is set, Setup registers nothing
// and returns a no-op shutdown. The returned shutdown flushes pending spans.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled || strings.TrimSpace(opts.Endpoint) == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(opts.Endpoint))
	if err != nil {
		return noop, err
	}
	name := opts.ServiceName
	if name == "" {
		name = "devicecore"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(name)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer implements core.Tracer on an OpenTelemetry tracer.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer builds a Tracer from tp. A nil tp uses the global provider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(instrumentationName)}
}

// Start implements core.Tracer. Spans are named devicecore.<operation> and
// carry the entity kind and action when the operation is known.
func (t *Tracer) Start(ctx context.Context, operation string) (context.Context, core.TraceSpan) {
	attrs := []attribute.KeyValue{attribute.String("devicecore.operation", operation)}
	if entity, action, ok := core.DescribeOperation(operation); ok {
		attrs = append(attrs,
			attribute.String("devicecore.entity", string(entity)),
			attribute.String("devicecore.action", string(action)),
		)
	}
	ctx, span := t.tracer.Start(ctx, "devicecore."+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
