package model

import "time"

// Stored reservation statuses.  Only CONFIRMED reservations block a
// seat; CANCELLED ones are kept for history and never block.
const (
    ReservationStatusConfirmed = "CONFIRMED"
    ReservationStatusCancelled = "CANCELLED"
)

// Derived reservation statuses.  These are never written to the
// reservations table; they are projected at read time from the stored
// status, the reservation window and the presence of a check-in.
const (
    ReservationStatusCompleted = "COMPLETED"
    ReservationStatusMissed    = "MISSED"
)

// Reservation records a user's claim on a specific seat for a bounded
// time window.  Reservations are created directly in CONFIRMED status
// (there is no pending-approval flow) and are never deleted;
// cancellation is a status change that preserves history.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the reservation.
//  RoomID      – room containing the reserved seat.
//  SeatID      – seat being reserved.
//  StartTime   – start of the window (inclusive).
//  EndTime     – end of the window (exclusive); strictly after StartTime.
//  Status      – CONFIRMED or CANCELLED as stored.
//  CheckInTime – when the user checked in, if they did.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Reservation struct {
    ID          uint64     // reservations.id
    UserID      uint64     // reservations.user_id
    RoomID      uint64     // reservations.room_id
    SeatID      uint64     // reservations.seat_id
    StartTime   time.Time  // reservations.start_time
    EndTime     time.Time  // reservations.end_time
    Status      string     // reservations.status
    CheckInTime *time.Time // reservations.check_in_time (nullable)
    CreatedAt   time.Time  // reservations.created_at
    UpdatedAt   time.Time  // reservations.updated_at
}
