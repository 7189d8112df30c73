// Package telemetry provides metrics recorders for the measure
// interceptor: a Prometheus-backed recorder with an exposition handler
// and an OpenTelemetry-backed recorder. Both key their timer and counter
// by the call identity under a "method" label and accumulate for the
// process lifetime; retention and windowing belong to the backend.
package telemetry
