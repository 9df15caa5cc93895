// go-utils/context_keys.go

package utils

import "context"

// ctxKey is unexported to prevent collisions.
type ctxKey string

// CtxKeyRequestID stores the per-request correlation id.
const CtxKeyRequestID ctxKey = "requestID"

// CtxKeyLanguage stores the negotiated display language.
const CtxKeyLanguage ctxKey = "language"

// RequestIDFromContext returns the request id set by the request logger, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyRequestID).(string)
	return id
}
