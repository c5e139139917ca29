package reservation

import (
    "context"
    "time"

    "github.com/studyhub/seat-reservation/internal/model"
)

// Store is the persistence contract the engine runs against.  Plain
// reads execute outside any transaction; the decide-then-write spans of
// Create, Cancel and CheckIn run inside InTx so that conflict check,
// row insert and seat-flag flip land as one atomic unit.
//
// Lookup methods return the sentinel Err*NotFound errors from this
// package when no row matches.
type Store interface {
    // RoomByID loads a room.
    RoomByID(ctx context.Context, id uint64) (*model.Room, error)
    // RoomSeats lists every seat of a room in ascending seat number.
    RoomSeats(ctx context.Context, roomID uint64) ([]model.Seat, error)
    // HasConflict reports whether any CONFIRMED reservation on the seat
    // overlaps [start, end).  It fails with ErrSeatNotFound when the
    // seat does not exist, so a missing seat is never read as free.
    HasConflict(ctx context.Context, seatID uint64, start, end time.Time) (bool, error)
    // ReservationsByUser lists a user's reservations, newest first.
    ReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
    // CheckInsByReservation loads existing check-ins for the given
    // reservation IDs, keyed by reservation ID.
    CheckInsByReservation(ctx context.Context, reservationIDs []uint64) (map[uint64]model.CheckIn, error)
    // InTx runs fn inside a single transaction, committing when fn
    // returns nil and rolling back otherwise.
    InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the transactional slice of the Store.  SeatForUpdate and
// ReservationForUpdate take row locks; every later statement in the
// same transaction therefore runs serialized per seat (respectively
// per reservation).
type Tx interface {
    // SeatForUpdate loads a seat and locks its row for the remainder of
    // the transaction.
    SeatForUpdate(ctx context.Context, seatID uint64) (*model.Seat, error)
    // HasConflict is the in-transaction variant of Store.HasConflict.
    HasConflict(ctx context.Context, seatID uint64, start, end time.Time) (bool, error)
    // HasBlocking reports whether any CONFIRMED reservation on the
    // seat is still live or upcoming as of the given instant.
    HasBlocking(ctx context.Context, seatID uint64, asOf time.Time) (bool, error)
    // InsertReservation persists a new reservation and populates its ID
    // and timestamps.
    InsertReservation(ctx context.Context, r *model.Reservation) error
    // SetSeatAvailability flips the denormalized seat hint.
    SetSeatAvailability(ctx context.Context, seatID uint64, available bool) error
    // ReservationForUpdate loads a reservation and locks its row.
    ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error)
    // UpdateReservationStatus transitions the stored status.
    UpdateReservationStatus(ctx context.Context, id uint64, status string) error
    // SetReservationCheckInTime stamps reservations.check_in_time.
    SetReservationCheckInTime(ctx context.Context, id uint64, t time.Time) error
    // CheckInByReservation loads the check-in of a reservation, if any.
    CheckInByReservation(ctx context.Context, reservationID uint64) (*model.CheckIn, error)
    // InsertCheckIn persists a new check-in and populates its ID.
    InsertCheckIn(ctx context.Context, ci *model.CheckIn) error
    // CheckInForUpdate loads a check-in by its own ID and locks its row.
    CheckInForUpdate(ctx context.Context, id uint64) (*model.CheckIn, error)
    // SetCheckOutTime stamps check_ins.check_out_time.
    SetCheckOutTime(ctx context.Context, id uint64, t time.Time) error
}

// Invalidator clears cached read models after a successful write.  The
// engine calls it synchronously so cache correctness is a property of
// the write path, not of every reader.  A nil Invalidator disables
// invalidation.
type Invalidator interface {
    // InvalidateRoom drops the room detail, seat list, room list and
    // every cached availability window for the given room.
    InvalidateRoom(ctx context.Context, roomID uint64)
}
