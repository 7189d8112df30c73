package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_CountsPerMethod(t *testing.T) {
	rec := NewPrometheusRecorder()
	ctx := context.Background()

	rec.IncrementCount(ctx, "svc.A")
	rec.IncrementCount(ctx, "svc.A")
	rec.IncrementCount(ctx, "svc.B")

	assert.Equal(t, float64(2), testutil.ToFloat64(rec.executionCount.WithLabelValues("svc.A")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.executionCount.WithLabelValues("svc.B")))
}

func TestPrometheusRecorder_TimingSamples(t *testing.T) {
	rec := NewPrometheusRecorder()
	ctx := context.Background()

	rec.RecordTiming(ctx, "svc.A", 15*time.Millisecond)
	rec.RecordTiming(ctx, "svc.A", 30*time.Millisecond)

	count := testutil.CollectAndCount(rec.executionTime, "method_execution_time_ms")
	assert.Equal(t, 1, count, "one labeled series expected")
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	rec := NewPrometheusRecorder()
	ctx := context.Background()

	rec.IncrementCount(ctx, "svc.Orders.Place")
	rec.RecordTiming(ctx, "svc.Orders.Place", 12*time.Millisecond)

	srv := httptest.NewServer(rec.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	exposition := string(body)

	assert.Contains(t, exposition, `method_execution_count_total{method="svc.Orders.Place"} 1`)
	assert.True(t, strings.Contains(exposition, "method_execution_time_ms_bucket"))
}

func TestPrometheusRecorder_SharedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	rec := NewPrometheusRecorderWithRegistry(registry)

	rec.IncrementCount(context.Background(), "svc.X")
	rec.RecordTiming(context.Background(), "svc.X", time.Millisecond)

	families, err := registry.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "method_execution_count_total")
	assert.Contains(t, names, "method_execution_time_ms")
}
