package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	llmRequestCounter  metric.Int64Counter
	llmRequestDuration metric.Float64Histogram
	llmErrorCounter    metric.Int64Counter
)

// InitLLMMetrics registers the gateway's provider-call instruments on the global meter.
func InitLLMMetrics() error {
	meter := otel.Meter("gameforge.llm")

	var err error
	llmRequestCounter, err = meter.Int64Counter(
		"llm.request.count",
		metric.WithDescription("Number of provider completion calls"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	llmRequestDuration, err = meter.Float64Histogram(
		"llm.request.duration",
		metric.WithDescription("Duration of provider completion calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	llmErrorCounter, err = meter.Int64Counter(
		"llm.request.errors",
		metric.WithDescription("Number of failed provider completion calls"),
		metric.WithUnit("{error}"),
	)
	return err
}

// RecordLLMRequest records one provider call for operation ("idea" or "feasibility").
// It is a no-op until InitLLMMetrics has run.
func RecordLLMRequest(ctx context.Context, operation string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	)

	if llmRequestCounter != nil {
		llmRequestCounter.Add(ctx, 1, attrs)
	}
	if llmRequestDuration != nil {
		llmRequestDuration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
	if err != nil && llmErrorCounter != nil {
		llmErrorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}
