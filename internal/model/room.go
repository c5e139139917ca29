package model

import "time"

// Room statuses as stored in the rooms.status column.  Only AVAILABLE
// rooms accept new reservations; MAINTENANCE and CLOSED rooms reject
// them with a status-specific reason.
const (
    RoomStatusAvailable   = "AVAILABLE"
    RoomStatusMaintenance = "MAINTENANCE"
    RoomStatusClosed      = "CLOSED"
)

// Room represents a study room that contains a fixed set of seats.
// Rooms are provisioned by catalog management; the reservation core
// only reads them and gates bookings on their status.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – human-readable room name.
//  Location    – free-form location text (building, floor).
//  Description – optional description of the room.
//  Capacity    – number of seats the room is provisioned for.
//  Status      – AVAILABLE, MAINTENANCE or CLOSED.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Room struct {
    ID          uint64    // rooms.id
    Name        string    // rooms.name
    Location    string    // rooms.location
    Description *string   // rooms.description (nullable)
    Capacity    uint32    // rooms.capacity
    Status      string    // rooms.status
    CreatedAt   time.Time // rooms.created_at
    UpdatedAt   time.Time // rooms.updated_at
}
