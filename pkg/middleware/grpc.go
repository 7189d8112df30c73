package middleware

import (
	"context"

	"google.golang.org/grpc"

	"github.com/execmeter/execmeter/pkg/measure"
)

// UnaryServerInterceptor instruments unary RPCs. Policies are keyed by
// full method name ("/package.Service/Method"); methods without a policy
// pass through with zero instrumentation side effects.
func UnaryServerInterceptor(ix *measure.Interceptor, policies map[string]*measure.Policy) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		return ix.Intercept(ctx, policies[info.FullMethod], measure.Call{
			Identity: info.FullMethod,
			Args:     measure.StructArgs(req),
			Invoke: func(ctx context.Context) (any, error) {
				return handler(ctx, req)
			},
		})
	}
}

// StreamServerInterceptor instruments streaming RPCs. The measured span
// covers the whole handler, from stream open to close.
func StreamServerInterceptor(ix *measure.Interceptor, policies map[string]*measure.Policy) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		_, err := ix.Intercept(ss.Context(), policies[info.FullMethod], measure.Call{
			Identity: info.FullMethod,
			Invoke: func(context.Context) (any, error) {
				return nil, handler(srv, ss)
			},
		})
		return err
	}
}
