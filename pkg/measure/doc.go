// Package measure instruments arbitrary function calls with structured
// entry/exit logging, slow-execution detection, and per-call timing and
// invocation-count metrics.
//
// The package is built around three pieces: a Policy describing what to
// log for a given call site, an Interceptor that drives the
// before/after/error/finally sequencing around the wrapped call, and a
// Reporter sink that receives log lines and metric samples. The
// Interceptor is stateless and safe for concurrent use; all aggregation
// lives behind the Reporter.
//
// Instrumentation is behaviorally transparent: the wrapped call's result
// or error is returned unchanged, reporter faults are isolated, and no
// additional blocking, retries, or cancellation are introduced.
package measure
