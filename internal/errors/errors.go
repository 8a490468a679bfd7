// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrRoomNotFound indicates the requested room does not exist in the
	// content store. Callers are expected to route to their generic
	// fallback when they see this.
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidInput indicates the caller provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContent indicates a resolved entry yielded no extractable
	// bilingual text.
	ErrNoContent = errors.New("no extractable content")
)

// RoomDataError represents malformed or unreadable room content with the
// room it belongs to.
type RoomDataError struct {
	RoomID string
	Err    error
}

func (e *RoomDataError) Error() string {
	return fmt.Sprintf("room data error (room=%s): %v", e.RoomID, e.Err)
}

func (e *RoomDataError) Unwrap() error {
	return e.Err
}

// NewRoomDataError creates a new room data error.
func NewRoomDataError(roomID string, err error) *RoomDataError {
	return &RoomDataError{RoomID: roomID, Err: err}
}
