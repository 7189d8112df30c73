// Package main is the entry point for the execmeter-demo binary.
// It serves a small instrumented endpoint next to a Prometheus
// exposition endpoint so the instrumentation output can be inspected
// end to end.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/execmeter/execmeter/pkg/config"
	"github.com/execmeter/execmeter/pkg/logging"
	"github.com/execmeter/execmeter/pkg/measure"
	"github.com/execmeter/execmeter/pkg/middleware"
	"github.com/execmeter/execmeter/pkg/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for execmeter-demo.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "execmeter-demo",
		Short: "Demo host for the execmeter instrumentation layer",
		Long: `Serves an instrumented /work endpoint together with /metrics.

Every request to /work is measured: entry and outcome log lines are
emitted, executions slower than the configured threshold are escalated,
and timing plus invocation-count metrics are exposed in Prometheus
format.

Example:
  execmeter-demo --config execmeter.yaml
  curl 'localhost:8080/work?delay_ms=50'
  curl localhost:8080/metrics`,
		RunE: runServe,
	}

	rootCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	rootCmd.Flags().StringP("addr", "a", "", "Listen address (overrides config)")
	rootCmd.Flags().StringP("log-level", "l", "", "Log level (trace, debug, info, warn, error; overrides config)")

	return rootCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	addr, _ := cmd.Flags().GetString("addr")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	recorder := telemetry.NewPrometheusRecorder()
	ix := measure.New(
		measure.NewLogReporter(logger, recorder),
		measure.WithSlowThreshold(cfg.SlowExecutionThreshold()),
	)

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newServeMux(ix, recorder),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"addr", cfg.Server.Address,
			"slow_threshold_ms", cfg.Metrics.SlowExecutionThresholdMs)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// newServeMux wires the demo routes: an instrumented work endpoint, the
// Prometheus exposition endpoint, and a health check.
func newServeMux(ix *measure.Interceptor, recorder *telemetry.PrometheusRecorder) *http.ServeMux {
	workPolicy := measure.MustPolicy(
		measure.WithEntryMessage("work request received"),
		measure.WithParamNames("method", "path"),
		measure.WithLevel(measure.LevelInfo),
		measure.WithErrorLogging(),
		measure.WithTimeoutLevel(measure.LevelWarn),
	)

	mux := http.NewServeMux()
	mux.Handle("/work", middleware.HTTP(ix, workPolicy, "/work")(http.HandlerFunc(handleWork)))
	mux.Handle("/metrics", recorder.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// handleWork simulates a unit of work whose duration the caller controls
// through the delay_ms query parameter.
func handleWork(w http.ResponseWriter, r *http.Request) {
	delay := 0
	if v := r.URL.Query().Get("delay_ms"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			http.Error(w, "delay_ms must be a non-negative integer", http.StatusBadRequest)
			return
		}
		delay = parsed
	}

	select {
	case <-time.After(time.Duration(delay) * time.Millisecond):
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "done",
		"delay_ms": delay,
	})
}
