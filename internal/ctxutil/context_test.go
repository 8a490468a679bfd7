package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("Expected empty request ID, got %q", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("Expected 'req-123', got %q", got)
	}
}

func TestRoomID(t *testing.T) {
	ctx := context.Background()

	if got := GetRoomID(ctx); got != "" {
		t.Errorf("Expected empty room ID, got %q", got)
	}

	ctx = WithRoomID(ctx, "sleep")
	if got := GetRoomID(ctx); got != "sleep" {
		t.Errorf("Expected 'sleep', got %q", got)
	}
}

func TestEmptyValueTreatedAsMissing(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("Expected empty string for empty stored value, got %q", got)
	}
}
