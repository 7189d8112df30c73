// Package middleware wires the measure interceptor into host runtimes:
// net/http handler chains and gRPC server interceptors. Adapters derive
// low-cardinality call identities from the route or RPC method and obey
// the nil-policy passthrough rule for uninstrumented calls.
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/execmeter/execmeter/pkg/measure"
)

// statusWriter captures the response status so it can be reported as the
// call's return value.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTP instruments a handler chain under policy. The call identity is
// "METHOD route" (route is the registered pattern, not the raw request
// path, to keep cardinality low). The argument snapshot carries the
// request method, path, and a generated request id; the response status
// is the return value. Statuses of 500 and above surface as call
// failures so error logging applies, while the response itself is
// untouched.
func HTTP(ix *measure.Interceptor, policy *measure.Policy, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := r.Method + " " + route
			args := measure.Args{
				{Name: "method", Value: r.Method},
				{Name: "path", Value: r.URL.Path},
				{Name: "request_id", Value: uuid.NewString()},
			}

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			_, _ = ix.Intercept(r.Context(), policy, measure.Call{
				Identity: identity,
				Args:     args,
				Invoke: func(ctx context.Context) (any, error) {
					next.ServeHTTP(sw, r.WithContext(ctx))
					if sw.status >= http.StatusInternalServerError {
						return sw.status, fmt.Errorf("handler returned status %d", sw.status)
					}
					return sw.status, nil
				},
			})
		})
	}
}
