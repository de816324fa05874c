package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on spans.
const (
	AttrQueryText    = "nlsql.query"
	AttrSegmentText  = "nlsql.segment"
	AttrSegmentCount = "nlsql.segment.count"
	AttrCorrected    = "nlsql.corrected"
	AttrStatement    = "nlsql.statement"
	AttrSuccess      = "nlsql.success"
)

// Tracer wraps an OpenTelemetry tracer with pipeline-specific span starters.
type Tracer struct {
	tracer      trace.Tracer
	serviceName string
}

// NewTracer creates a Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider, serviceName string) *Tracer {
	return &Tracer{
		tracer:      tp.Tracer(TracerName),
		serviceName: serviceName,
	}
}

// StartParse starts a span covering one whole pipeline run.
func (t *Tracer) StartParse(ctx context.Context, query string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "nlsql.parse", trace.WithAttributes(
		attribute.String(AttrQueryText, query),
	))
}

// StartSegment starts a span for one segment's parse and translate path.
func (t *Tracer) StartSegment(ctx context.Context, segment string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "nlsql.segment", trace.WithAttributes(
		attribute.String(AttrSegmentText, segment),
	))
}

// StartCorrection starts a span for the fuzzy correction retry.
func (t *Tracer) StartCorrection(ctx context.Context, segment string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "nlsql.correct", trace.WithAttributes(
		attribute.String(AttrSegmentText, segment),
	))
}

// StartExecute starts a span for one statement execution.
func (t *Tracer) StartExecute(ctx context.Context, sql string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "nlsql.execute", trace.WithAttributes(
		attribute.String(AttrStatement, sql),
	))
}

// SetParseOutcome records the aggregate result of a pipeline run on the
// parse span.
func SetParseOutcome(span trace.Span, segments int, success bool) {
	span.SetAttributes(
		attribute.Int(AttrSegmentCount, segments),
		attribute.Bool(AttrSuccess, success),
	)
}

// MarkCorrected flags a segment span whose parse succeeded only after the
// corrective retry.
func MarkCorrected(span trace.Span) {
	span.SetAttributes(attribute.Bool(AttrCorrected, true))
}

// RecordError marks the span failed and records the error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
