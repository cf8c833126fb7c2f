package nipper

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Metric and span names.
const (
	MetricFindingsParsed       = "nipper.findings.parsed"
	MetricReferencesUnresolved = "nipper.references.unresolved"
	MetricTablesTruncated      = "nipper.tables.truncated"
	MetricParseDuration        = "nipper.parse.duration"

	SpanParse = "nipper.parse"
)

const instrumentationName = "github.com/zero-day-ai/nipper"

// telemetry holds the OpenTelemetry instruments of a Parser.
// These are created once in New and reused for every parse.
type telemetry struct {
	tracer trace.Tracer

	findingsCounter   metric.Int64Counter
	unresolvedCounter metric.Int64Counter
	truncatedCounter  metric.Int64Counter
	durationHistogram metric.Float64Histogram
}

func newTelemetry(tracer trace.Tracer, meter metric.Meter) (*telemetry, error) {
	t := &telemetry{tracer: tracer}
	var err error

	t.findingsCounter, err = meter.Int64Counter(
		MetricFindingsParsed,
		metric.WithDescription("Number of Security Audit findings parsed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create findings counter: %w", err)
	}

	t.unresolvedCounter, err = meter.Int64Counter(
		MetricReferencesUnresolved,
		metric.WithDescription("Number of mitigation entries that did not resolve to one finding"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create unresolved counter: %w", err)
	}

	t.truncatedCounter, err = meter.Int64Counter(
		MetricTablesTruncated,
		metric.WithDescription("Number of table rows truncated to the header width"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create truncated counter: %w", err)
	}

	t.durationHistogram, err = meter.Float64Histogram(
		MetricParseDuration,
		metric.WithDescription("Report parse duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return t, nil
}

// start opens a span. Callers end it with finish.
func (t *telemetry) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// finish records err on the span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// recordReport records the metrics of a parsed report.
func (t *telemetry) recordReport(ctx context.Context, r *Report, cached bool, elapsed time.Duration) {
	opts := metric.WithAttributes(attribute.Bool("nipper.cache.hit", cached))
	t.durationHistogram.Record(ctx, float64(elapsed.Microseconds())/1000, opts)

	if r.SecurityAudit == nil {
		return
	}
	t.findingsCounter.Add(ctx, int64(len(r.SecurityAudit.Findings)), opts)
	if m := r.SecurityAudit.Mitigation; m != nil {
		t.unresolvedCounter.Add(ctx, int64(len(m.Unresolved)), opts)
	}
}

func (t *telemetry) recordTruncated(ctx context.Context, table string, rows int) {
	t.truncatedCounter.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("nipper.table", table)))
}
