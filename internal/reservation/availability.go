package reservation

import (
    "context"
    "errors"
    "time"
)

// SeatAvailability annotates one seat of a room as free or taken for a
// requested window.
type SeatAvailability struct {
    SeatID     uint64 `json:"seat_id"`
    SeatNumber uint32 `json:"seat_number"`
    Available  bool   `json:"available"`
}

// ComputeAvailability reports, for every seat of the room, whether the
// requested [start, end) window is free of confirmed reservations.
// The result deliberately ignores the seats' denormalized IsAvailable
// hint: that flag only reflects "now", not an arbitrary window.  Seats
// come back in ascending seat number so identical inputs over
// unchanged data produce identical output.
func (s *Service) ComputeAvailability(ctx context.Context, roomID uint64, start, end time.Time) ([]SeatAvailability, error) {
    room, err := s.store.RoomByID(ctx, roomID)
    if err != nil {
        if errors.Is(err, ErrRoomNotFound) {
            return nil, newError(KindNotFound, "room not found")
        }
        return nil, err
    }
    if err := roomBookable(room); err != nil {
        return nil, err
    }
    if err := validateWindow(start, end, s.now()); err != nil {
        return nil, err
    }

    seats, err := s.store.RoomSeats(ctx, roomID)
    if err != nil {
        return nil, err
    }
    if len(seats) == 0 {
        return nil, newError(KindNotFound, "room has no seats provisioned")
    }

    out := make([]SeatAvailability, 0, len(seats))
    for _, seat := range seats {
        conflict, err := s.store.HasConflict(ctx, seat.ID, start.UTC(), end.UTC())
        if err != nil {
            return nil, err
        }
        out = append(out, SeatAvailability{
            SeatID:     seat.ID,
            SeatNumber: seat.SeatNumber,
            Available:  !conflict,
        })
    }
    return out, nil
}
