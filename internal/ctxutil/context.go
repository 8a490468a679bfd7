// Package ctxutil provides type-safe context value management.
// Uses private key types to prevent collisions.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	requestIDKey contextKey = "ctxutil.requestID"
	roomIDKey    contextKey = "ctxutil.roomID"
)

// WithRequestID adds a request ID to the context.
// Request IDs correlate log lines and error reports for one HTTP request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
// Returns the request ID if found, empty string otherwise.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(requestIDKey); v != nil {
		if requestID, ok := v.(string); ok && requestID != "" {
			return requestID
		}
	}
	return ""
}

// WithRoomID adds the room being served to the context.
func WithRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, roomIDKey, roomID)
}

// GetRoomID retrieves the room ID from the context.
// Returns the room ID if found, empty string otherwise.
func GetRoomID(ctx context.Context) string {
	if v := ctx.Value(roomIDKey); v != nil {
		if roomID, ok := v.(string); ok && roomID != "" {
			return roomID
		}
	}
	return ""
}
