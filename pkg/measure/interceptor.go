package measure

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// SlowExecutionMarker is appended to the outcome log message when the
// call exceeded the slow-execution threshold. Alerting rules can search
// for this literal.
const SlowExecutionMarker = " (SLOW EXECUTION)"

// DefaultSlowThreshold is the slow-execution threshold applied when the
// interceptor is built without an explicit one.
const DefaultSlowThreshold = 5000 * time.Millisecond

// Call is one invocation handed to the interceptor: a stable identity
// for the underlying callable, the argument snapshot, and the thunk that
// performs the real work.
//
// Identity is used as the metrics label and must be low-cardinality:
// fully-qualified name plus signature shape, never per-call values.
type Call struct {
	Identity string
	Args     Args
	Invoke   func(ctx context.Context) (any, error)
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithSlowThreshold sets the elapsed time above which executions are
// escalated. The threshold is read once at construction and treated as
// constant for the interceptor's lifetime.
func WithSlowThreshold(d time.Duration) Option {
	return func(ix *Interceptor) { ix.slowThreshold = d }
}

// Interceptor drives the entry/exit instrumentation around wrapped
// calls. It holds no mutable state; a single instance may serve any
// number of concurrent invocations, including overlapping calls to the
// same callable.
type Interceptor struct {
	reporter      Reporter
	slowThreshold time.Duration
	now           func() time.Time
}

// New builds an Interceptor emitting through reporter. A nil reporter
// disables all instrumentation output while keeping calls transparent.
func New(reporter Reporter, opts ...Option) *Interceptor {
	if reporter == nil {
		reporter = NopReporter{}
	}
	ix := &Interceptor{
		reporter:      reporter,
		slowThreshold: DefaultSlowThreshold,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Intercept runs call under policy. With a nil policy it is a pure
// passthrough: the call runs with zero logging and zero metrics.
//
// Otherwise the sequence is: optional entry log (entry message plus the
// allow-listed parameters), timed invocation, optional failure log,
// outcome log with slow-execution escalation, one timing sample and one
// counter increment, and on success an optional return-value log of the
// already-captured result. The call's result or error is returned
// unchanged; panics from the call propagate after metrics are recorded.
func (ix *Interceptor) Intercept(ctx context.Context, policy *Policy, call Call) (any, error) {
	if policy == nil {
		return call.Invoke(ctx)
	}

	ix.logEntry(ctx, policy, call)

	result, err := ix.invoke(ctx, policy, call)
	if err != nil {
		return nil, err
	}

	if policy.LogsReturnValue() {
		// Reuse the captured result; the call must never run twice.
		ix.emit(ctx, policy.LogLevel(), fmt.Sprintf("Return value: %v", result),
			slog.Any("return_value", result))
	}
	return result, nil
}

// invoke times the call and guarantees the finally step runs exactly
// once, on success, failure, and unwinding panics alike.
func (ix *Interceptor) invoke(ctx context.Context, policy *Policy, call Call) (any, error) {
	start := ix.now()
	defer func() {
		ix.finishExecution(ctx, policy, call.Identity, ix.now().Sub(start))
	}()

	result, err := call.Invoke(ctx)
	if err != nil {
		if policy.LogsErrors() {
			ix.emit(ctx, policy.ErrorLogLevel(),
				fmt.Sprintf("execution of [%s] failed", call.Identity),
				slog.Any("error", err))
		}
		return nil, err
	}
	return result, nil
}

// finishExecution emits the outcome log, escalating to the timeout level
// when elapsed strictly exceeds the threshold, then records metrics.
// Metrics are recorded unconditionally, independent of log configuration
// and of the call's outcome.
func (ix *Interceptor) finishExecution(ctx context.Context, policy *Policy, identity string, elapsed time.Duration) {
	level := policy.LogLevel()
	msg := fmt.Sprintf("Method [%s] executed in %dms", identity, elapsed.Milliseconds())
	if elapsed > ix.slowThreshold && policy.TimeoutLogEnabled() {
		level = policy.TimeoutLogLevel()
		msg += SlowExecutionMarker
	}
	ix.emit(ctx, level, msg,
		slog.String("method", identity),
		slog.Int64("elapsed_ms", elapsed.Milliseconds()))

	ix.recordTiming(ctx, identity, elapsed)
	ix.incrementCount(ctx, identity)
}

func (ix *Interceptor) logEntry(ctx context.Context, policy *Policy, call Call) {
	if policy.EntryLogMessage() == "" {
		return
	}
	params := policy.paramsToLog(call.Args)
	attrs := make([]slog.Attr, 0, len(params))
	for _, p := range params {
		attrs = append(attrs, slog.Any(p.Name, p.Value))
	}
	ix.emit(ctx, policy.LogLevel(), policy.EntryLogMessage(), attrs...)
}

// The reporter is an external collaborator; each emission is isolated so
// an instrumentation fault can never mask or replace the wrapped call's
// real outcome. A panicking sink costs that one emission, nothing more.

func (ix *Interceptor) emit(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	defer func() { _ = recover() }()
	ix.reporter.Emit(ctx, level, msg, attrs...)
}

func (ix *Interceptor) recordTiming(ctx context.Context, identity string, elapsed time.Duration) {
	defer func() { _ = recover() }()
	ix.reporter.RecordTiming(ctx, identity, elapsed)
}

func (ix *Interceptor) incrementCount(ctx context.Context, identity string) {
	defer func() { _ = recover() }()
	ix.reporter.IncrementCount(ctx, identity)
}
