package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/SeatShuffle/internal/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies SeatShuffle spans.
const ServiceName = "seatshuffle"

// Tracer wraps an OpenTelemetry tracer. A zero-value exporter setup (see
// NoopTracer) records nothing.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	closer   io.Closer
}

// NoopTracer returns a tracer whose spans are discarded.
func NoopTracer() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(ServiceName)}
}

// NewTracer exports spans as JSON lines to w. Spans are exported
// synchronously when they end.
func NewTracer(w io.Writer, version string) (*Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", version),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exporter),
	)

	return &Tracer{
		provider: provider,
		tracer:   provider.Tracer(ServiceName),
	}, nil
}

// NewFileTracer exports spans to the file at path, truncating it.
func NewFileTracer(path, version string) (*Tracer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	t, err := NewTracer(file, version)
	if err != nil {
		file.Close()
		return nil, err
	}
	t.closer = file
	return t, nil
}

// Start begins a new span with the given name.
func (t *Tracer) Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// StartGenerateSpan starts a span describing one seating request.
func (t *Tracer) StartGenerateSpan(ctx context.Context, runID string, req model.Request) (context.Context, trace.Span) {
	return t.Start(ctx, "seating.generate",
		attribute.String("run.id", runID),
		attribute.Int("request.students", req.Students),
		attribute.Int("request.rows", req.Rows),
		attribute.Int("request.cols", req.Cols),
		attribute.Int("request.forbidden_pairs", len(req.ForbiddenPairs)),
		attribute.Int("request.fixed_seats", len(req.FixedSeats)),
	)
}

// Shutdown flushes pending spans and closes the trace file, if any.
func (t *Tracer) Shutdown(ctx context.Context) error {
	var err error
	if t.provider != nil {
		err = t.provider.Shutdown(ctx)
	}
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RecordError records an error on the span and marks it failed.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// RecordResult annotates the span with the outcome of a generation.
func RecordResult(span trace.Span, res model.Result) {
	span.SetAttributes(
		attribute.Int("result.attempts", res.Attempts),
		attribute.Int("result.overflow", len(res.Overflow)),
	)
	span.SetStatus(codes.Ok, "")
}
