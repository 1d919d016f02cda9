package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/xraph/syllabus"

// Tracer provides OpenTelemetry tracing for Syllabus.
// A nil *Tracer starts no-op spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Syllabus tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

func (t *Tracer) get() trace.Tracer {
	if t == nil || t.tracer == nil {
		return noop.NewTracerProvider().Tracer(tracerName)
	}
	return t.tracer
}

// StartMutationSpan starts a span for a create, update or remove.
func (t *Tracer) StartMutationSpan(ctx context.Context, kind, op, recordID string) (context.Context, trace.Span) {
	return t.get().Start(ctx, "syllabus."+kind+"."+op,
		trace.WithAttributes(
			attribute.String("syllabus.kind", kind),
			attribute.String("syllabus.op", op),
			attribute.String("syllabus.id", recordID),
		),
	)
}

// StartReportSpan starts a span for a reporting view.
func (t *Tracer) StartReportSpan(ctx context.Context, view string) (context.Context, trace.Span) {
	return t.get().Start(ctx, "syllabus.report",
		trace.WithAttributes(attribute.String("syllabus.view", view)),
	)
}

// EndSpan records err, if any, and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
