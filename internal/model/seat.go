package model

import "time"

// Seat describes a single bookable seat inside a study room.  Seats are
// uniquely identified by their room and seat number.
//
// IsAvailable is a denormalized hint that mirrors "no confirmed
// reservation currently holds this seat".  It keeps plain list views
// cheap; conflict decisions always re-derive the truth from the
// reservations table instead of trusting this flag.
//
// Fields:
//  ID          – primary key identifier.
//  RoomID      – room to which this seat belongs.
//  SeatNumber  – position of the seat within the room (1-based).
//  IsAvailable – denormalized availability hint, not the source of truth.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Seat struct {
    ID          uint64    // seats.id
    RoomID      uint64    // seats.room_id
    SeatNumber  uint32    // seats.seat_number
    IsAvailable bool      // seats.is_available
    CreatedAt   time.Time // seats.created_at
    UpdatedAt   time.Time // seats.updated_at
}
