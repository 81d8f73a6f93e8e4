package middleware

import "context"

type contextKey string

const ctxAdminScope contextKey = "admin_scope"

func IsAdminContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, ok := ctx.Value(ctxAdminScope).(bool)
	return ok && v
}

// WithAdminScope marks the context as carrying back-office privileges.
func WithAdminScope(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminScope, true)
}
