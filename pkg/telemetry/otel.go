package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "execmeter"

// OTelRecorder records execution metrics through the global
// OpenTelemetry meter provider. Instrument names follow the
// method.execution.* convention with a "method" attribute.
type OTelRecorder struct {
	executionTime  metric.Float64Histogram
	executionCount metric.Int64Counter
}

// NewOTelRecorder creates the instruments against the currently
// installed meter provider. Call it after the provider is configured.
func NewOTelRecorder() (*OTelRecorder, error) {
	meter := otel.GetMeterProvider().Meter(meterName)

	executionTime, err := meter.Float64Histogram(
		"method.execution.time",
		metric.WithDescription("Wall-clock execution time of instrumented calls"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	executionCount, err := meter.Int64Counter(
		"method.execution.count",
		metric.WithDescription("Total invocations of instrumented calls"),
		metric.WithUnit("{count}"),
	)
	if err != nil {
		return nil, err
	}

	return &OTelRecorder{
		executionTime:  executionTime,
		executionCount: executionCount,
	}, nil
}

// RecordTiming adds one timing sample for the call identity.
func (r *OTelRecorder) RecordTiming(ctx context.Context, identity string, elapsed time.Duration) {
	r.executionTime.Record(ctx, float64(elapsed)/float64(time.Millisecond),
		metric.WithAttributes(attribute.String("method", identity)))
}

// IncrementCount adds one invocation for the call identity.
func (r *OTelRecorder) IncrementCount(ctx context.Context, identity string) {
	r.executionCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("method", identity)))
}
