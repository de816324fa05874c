package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's metric instruments.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestCount    metric.Int64Counter
	segmentCount    metric.Int64Histogram
	correctionCount metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
	errorCount      metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	// Instrument creation only fails on invalid parameters; fall back to the
	// bare instrument to keep partial metrics on error.
	var err error

	m.requestDuration, err = meter.Float64Histogram(
		"nlsql.request.duration",
		metric.WithDescription("Duration of parse requests in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.requestDuration, _ = meter.Float64Histogram("nlsql.request.duration")
	}

	m.requestCount, err = meter.Int64Counter(
		"nlsql.request.count",
		metric.WithDescription("Total number of parse requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		m.requestCount, _ = meter.Int64Counter("nlsql.request.count")
	}

	m.segmentCount, err = meter.Int64Histogram(
		"nlsql.segment.count",
		metric.WithDescription("Number of segments per parse request"),
		metric.WithUnit("{segment}"),
	)
	if err != nil {
		m.segmentCount, _ = meter.Int64Histogram("nlsql.segment.count")
	}

	m.correctionCount, err = meter.Int64Counter(
		"nlsql.correction.count",
		metric.WithDescription("Number of fuzzy correction rounds that produced a suggestion"),
		metric.WithUnit("{correction}"),
	)
	if err != nil {
		m.correctionCount, _ = meter.Int64Counter("nlsql.correction.count")
	}

	m.dbQueryDuration, err = meter.Float64Histogram(
		"nlsql.db.query.duration",
		metric.WithDescription("Duration of generated statement executions in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.dbQueryDuration, _ = meter.Float64Histogram("nlsql.db.query.duration")
	}

	m.errorCount, err = meter.Int64Counter(
		"nlsql.error.count",
		metric.WithDescription("Total number of per-segment parse failures"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("nlsql.error.count")
	}

	return m
}

// RecordParse records the outcome of one pipeline run.
func (m *Metrics) RecordParse(ctx context.Context, segments int, success bool) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.requestCount.Add(ctx, 1, attrs)
	m.segmentCount.Record(ctx, int64(segments), attrs)
}

// RecordRequestDuration records the wall time of one request.
func (m *Metrics) RecordRequestDuration(ctx context.Context, d time.Duration) {
	m.requestDuration.Record(ctx, float64(d.Milliseconds()))
}

// RecordCorrection counts one correction round that produced suggestions.
func (m *Metrics) RecordCorrection(ctx context.Context) {
	m.correctionCount.Add(ctx, 1)
}

// RecordDBQuery records the duration of one statement execution.
func (m *Metrics) RecordDBQuery(ctx context.Context, d time.Duration) {
	m.dbQueryDuration.Record(ctx, float64(d.Milliseconds()))
}

// RecordSegmentError counts one per-segment parse failure.
func (m *Metrics) RecordSegmentError(ctx context.Context) {
	m.errorCount.Add(ctx, 1)
}
