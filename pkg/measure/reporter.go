package measure

import (
	"context"
	"log/slog"
	"time"
)

// MetricsRecorder accumulates timing samples and invocation counts keyed
// by call identity. Implementations must be safe for concurrent use and
// keep identity cardinality low (identities name call sites, not calls).
type MetricsRecorder interface {
	RecordTiming(ctx context.Context, identity string, elapsed time.Duration)
	IncrementCount(ctx context.Context, identity string)
}

// Reporter is the sink the interceptor emits through: leveled log lines
// plus the two metric operations. All methods are best-effort from the
// interceptor's perspective; a faulting reporter never changes the
// wrapped call's outcome.
type Reporter interface {
	Emit(ctx context.Context, level Level, msg string, attrs ...slog.Attr)
	MetricsRecorder
}

// NopReporter discards everything. It backs uninstrumented paths and is
// the default metrics sink when none is supplied.
type NopReporter struct{}

func (NopReporter) Emit(context.Context, Level, string, ...slog.Attr) {}

func (NopReporter) RecordTiming(context.Context, string, time.Duration) {}

func (NopReporter) IncrementCount(context.Context, string) {}

// LogReporter writes log lines through a slog.Logger and forwards metric
// operations to a MetricsRecorder.
type LogReporter struct {
	logger  *slog.Logger
	metrics MetricsRecorder
}

// NewLogReporter builds a Reporter from a logger and a metrics recorder.
// A nil logger falls back to slog.Default(); a nil recorder discards
// metrics.
func NewLogReporter(logger *slog.Logger, metrics MetricsRecorder) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NopReporter{}
	}
	return &LogReporter{logger: logger, metrics: metrics}
}

func (r *LogReporter) Emit(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	r.logger.LogAttrs(ctx, level.Slog(), msg, attrs...)
}

func (r *LogReporter) RecordTiming(ctx context.Context, identity string, elapsed time.Duration) {
	r.metrics.RecordTiming(ctx, identity, elapsed)
}

func (r *LogReporter) IncrementCount(ctx context.Context, identity string) {
	r.metrics.IncrementCount(ctx, identity)
}
