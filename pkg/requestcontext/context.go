// Package requestcontext carries request-scoped values through
// context.Context so services can read them without importing net/http.
//
// The HTTP middleware sets the session user, the request id and the request
// time; tests set them directly:
//
//	ctx = requestcontext.WithUserID(ctx, "alice")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type key int

const (
	userIDKey key = iota
	requestIDKey
	requestTimeKey
)

// UserID is the session user id set by the gateway, or "" for anonymous
// requests.
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequestID is the correlation id attached to every log line of a request.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Now is the time the request arrived. Outside a request, such as in the
// audit worker, it falls back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}
