// Package queue defines the domain events exchanged over the message
// broker and the publisher/consumer pair that moves them.  Events are
// best-effort: a broker outage never fails the request that produced
// the event.
package queue

// Event types carried in the Envelope.Type field.
const (
    TypeReservationConfirmed = "reservation.confirmed"
    TypeReservationCancelled = "reservation.cancelled"
    TypeCheckInRecorded      = "checkin.recorded"
)

// Envelope wraps every published event with an identifier and type so
// consumers can dispatch without inspecting the payload.
type Envelope struct {
    EventID    string           `json:"event_id"`
    Type       string           `json:"type"`
    OccurredAt string           `json:"occurred_at"`
    Payload    ReservationEvent `json:"payload"`
}

// ReservationEvent carries enough context for downstream consumers to
// log or notify without querying the primary database.  CheckInStatus
// is only set on checkin.recorded events.
type ReservationEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    RoomID        uint64 `json:"room_id"`
    SeatID        uint64 `json:"seat_id"`
    StartTime     string `json:"start_time"`
    EndTime       string `json:"end_time"`
    CheckInStatus string `json:"check_in_status,omitempty"`
}
