package model

import "time"

// Attendance classification of a check-in relative to the reservation
// start.  ON_TIME covers check-ins up to fifteen minutes after the
// start; anything later inside the window is LATE.
const (
    CheckInStatusOnTime = "ON_TIME"
    CheckInStatusLate   = "LATE"
)

// CheckIn proves physical attendance for a reservation.  At most one
// check-in may exist per reservation; a second attempt fails rather
// than overwriting the first.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation this check-in belongs to (unique).
//  CheckInTime   – when the user checked in.
//  CheckOutTime  – when the user checked out, if they did.
//  Status        – ON_TIME or LATE.
//  CreatedAt     – creation timestamp.
type CheckIn struct {
    ID            uint64     // check_ins.id
    ReservationID uint64     // check_ins.reservation_id
    CheckInTime   time.Time  // check_ins.check_in_time
    CheckOutTime  *time.Time // check_ins.check_out_time (nullable)
    Status        string     // check_ins.status
    CreatedAt     time.Time  // check_ins.created_at
}
