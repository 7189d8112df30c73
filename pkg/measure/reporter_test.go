package measure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReporter_EmitWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: LevelTrace.Slog(),
	}))

	rep := NewLogReporter(logger, nil)
	rep.Emit(context.Background(), LevelWarn, "something slow", slog.String("method", "svc.X"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "something slow", line["msg"])
	assert.Equal(t, "svc.X", line["method"])
	assert.Equal(t, "WARN", line["level"])
}

func TestLogReporter_ForwardsMetrics(t *testing.T) {
	rec := &recordingReporter{}
	rep := NewLogReporter(slog.Default(), rec)

	rep.RecordTiming(context.Background(), "svc.X", 12*time.Millisecond)
	rep.IncrementCount(context.Background(), "svc.X")

	require.Len(t, rec.timings, 1)
	assert.Equal(t, 12*time.Millisecond, rec.timings[0].elapsed)
	assert.Equal(t, []string{"svc.X"}, rec.counts)
}

func TestLogReporter_NilCollaborators(t *testing.T) {
	rep := NewLogReporter(nil, nil)

	// Must not panic with both collaborators defaulted.
	rep.RecordTiming(context.Background(), "svc.X", time.Millisecond)
	rep.IncrementCount(context.Background(), "svc.X")
}

func TestNopReporter(t *testing.T) {
	var rep NopReporter
	rep.Emit(context.Background(), LevelError, "dropped")
	rep.RecordTiming(context.Background(), "svc.X", time.Second)
	rep.IncrementCount(context.Background(), "svc.X")
}
