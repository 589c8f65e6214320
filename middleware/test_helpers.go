package middleware

import "context"

// SetRequestIDForTest injects a request ID into ctx without running the
// RequestID middleware.
func SetRequestIDForTest(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, id)
}
