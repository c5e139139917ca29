// Package reservation implements the reservation conflict and lifecycle
// engine: interval conflict detection, per-window availability,
// reservation creation and cancellation, and check-in evaluation.  It
// depends only on the Store contract, not on a concrete storage engine.
package reservation

import "errors"

// Kind classifies a failed operation so callers can distinguish "try a
// different seat" (KindConflict) from "try a different room"
// (KindRoomNotBookable) from "fix your request" (KindInvalidWindow)
// from "not allowed" (KindForbidden).
type Kind string

const (
    KindNotFound          Kind = "not_found"
    KindInvalidWindow     Kind = "invalid_window"
    KindRoomNotBookable   Kind = "room_not_bookable"
    KindSeatMismatch      Kind = "seat_mismatch"
    KindConflict          Kind = "conflict"
    KindForbidden         Kind = "forbidden"
    KindInvalidTransition Kind = "invalid_transition"
    KindAlreadyProcessed  Kind = "already_processed"
)

// Error is the typed failure returned by every operation in this
// package.  Message is reason-specific and safe to show to callers.
type Error struct {
    Kind    Kind
    Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// KindOf extracts the Kind from err when it wraps an *Error.  It
// returns an empty Kind for unclassified errors, which handlers should
// treat as internal.
func KindOf(err error) Kind {
    var e *Error
    if errors.As(err, &e) {
        return e.Kind
    }
    return ""
}

func newError(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// Sentinel errors returned by Store implementations when a lookup
// yields no row.  The service translates them into KindNotFound
// failures with entity-specific messages.
var (
    ErrRoomNotFound        = errors.New("room not found")
    ErrSeatNotFound        = errors.New("seat not found")
    ErrReservationNotFound = errors.New("reservation not found")
    ErrCheckInNotFound     = errors.New("check-in not found")
)
