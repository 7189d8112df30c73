package measure

import "context"

// Do intercepts fn under policy while preserving its concrete result
// type. It is the typed front-end over Interceptor.Intercept for hosts
// that wire instrumentation as explicit wrapper functions.
func Do[R any](ctx context.Context, ix *Interceptor, policy *Policy, identity string, args Args, fn func(context.Context) (R, error)) (R, error) {
	out, err := ix.Intercept(ctx, policy, Call{
		Identity: identity,
		Args:     args,
		Invoke: func(ctx context.Context) (any, error) {
			return fn(ctx)
		},
	})
	if err != nil {
		var zero R
		return zero, err
	}
	result, _ := out.(R)
	return result, nil
}

// Wrap returns an instrumented version of a one-argument function. The
// argument is captured in the snapshot under argName; an empty argName
// leaves the snapshot empty. The returned function is safe for
// concurrent use whenever fn is.
func Wrap[A, R any](ix *Interceptor, policy *Policy, identity, argName string, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, arg A) (R, error) {
		var args Args
		if argName != "" {
			args = Args{{Name: argName, Value: arg}}
		}
		return Do(ctx, ix, policy, identity, args, func(ctx context.Context) (R, error) {
			return fn(ctx, arg)
		})
	}
}
