package reservation

import (
    "context"
    "errors"
    "fmt"
    "time"

    "go.uber.org/zap"

    "github.com/studyhub/seat-reservation/internal/model"
)

// OnTimeGrace is how long after the reservation start a check-in still
// counts as ON_TIME.  The boundary is inclusive: a check-in exactly at
// start+grace is on time; one second later is LATE.
const OnTimeGrace = 15 * time.Minute

// Service orchestrates the reservation lifecycle: it validates
// requested windows, gates on room and seat state, runs conflict
// detection and performs the persist + seat-flag flip atomically
// through the Store.  Every successful write synchronously invalidates
// the affected room's cached read models.
type Service struct {
    store Store
    cache Invalidator
    log   *zap.Logger
    now   func() time.Time
}

// NewService constructs a Service.  store must be non-nil; cache may be
// nil to disable invalidation (e.g. when Redis is unreachable).
func NewService(store Store, cache Invalidator, log *zap.Logger) *Service {
    if store == nil {
        panic("nil store passed to NewService")
    }
    if log == nil {
        log = zap.NewNop()
    }
    return &Service{
        store: store,
        cache: cache,
        log:   log,
        now:   func() time.Time { return time.Now().UTC() },
    }
}

// validateWindow rejects malformed or past windows.  start == now is
// accepted; only strictly-past starts are refused.
func validateWindow(start, end, now time.Time) error {
    if !start.Before(end) {
        return newError(KindInvalidWindow, "start time must be before end time")
    }
    if start.Before(now) {
        return newError(KindInvalidWindow, "start time must not be in the past")
    }
    return nil
}

// roomBookable gates reservation creation and availability queries on
// the room status, carrying the specific reason in the message.
func roomBookable(room *model.Room) error {
    switch room.Status {
    case model.RoomStatusAvailable:
        return nil
    case model.RoomStatusMaintenance:
        return newError(KindRoomNotBookable, "room is under maintenance")
    case model.RoomStatusClosed:
        return newError(KindRoomNotBookable, "room is closed")
    default:
        return newError(KindRoomNotBookable, fmt.Sprintf("room is not bookable (status %s)", room.Status))
    }
}

// Create reserves a seat for the given window.  The conflict check,
// reservation insert and seat-flag flip run inside one transaction with
// the seat row locked, so two concurrent requests for overlapping
// windows on the same seat cannot both succeed.
func (s *Service) Create(ctx context.Context, userID, roomID, seatID uint64, start, end time.Time) (*model.Reservation, error) {
    now := s.now()
    if err := validateWindow(start, end, now); err != nil {
        return nil, err
    }

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

    res := &model.Reservation{
        UserID:    userID,
        RoomID:    roomID,
        SeatID:    seatID,
        StartTime: start.UTC(),
        EndTime:   end.UTC(),
        Status:    model.ReservationStatusConfirmed,
    }
    err = s.store.InTx(ctx, func(tx Tx) error {
        seat, err := tx.SeatForUpdate(ctx, seatID)
        if err != nil {
            if errors.Is(err, ErrSeatNotFound) {
                return newError(KindNotFound, "seat not found")
            }
            return err
        }
        if seat.RoomID != roomID {
            return newError(KindSeatMismatch, "seat does not belong to the requested room")
        }
        // The IsAvailable hint reflects "now", not the requested
        // window; only the conflict query may reject.  A seat held for
        // a future window must still accept non-overlapping bookings.
        conflict, err := tx.HasConflict(ctx, seatID, res.StartTime, res.EndTime)
        if err != nil {
            return err
        }
        if conflict {
            return newError(KindConflict, "seat already reserved for that window")
        }
        if err := tx.InsertReservation(ctx, res); err != nil {
            return err
        }
        return tx.SetSeatAvailability(ctx, seatID, false)
    })
    if err != nil {
        return nil, err
    }

    s.invalidate(ctx, roomID)
    s.log.Info("reservation created",
        zap.Uint64("reservation_id", res.ID),
        zap.Uint64("user_id", userID),
        zap.Uint64("seat_id", seatID),
        zap.Time("start", res.StartTime),
        zap.Time("end", res.EndTime))
    return res, nil
}

// Cancel transitions a CONFIRMED reservation to CANCELLED and releases
// the seat hint when no other confirmed reservation still blocks the
// seat.  Only the owning user may cancel, only while the
// reservation has not started, and only once: double cancellation is an
// invalid transition, not a silent success.
func (s *Service) Cancel(ctx context.Context, userID, reservationID uint64) (*model.Reservation, error) {
    now := s.now()
    var res *model.Reservation
    err := s.store.InTx(ctx, func(tx Tx) error {
        r, err := tx.ReservationForUpdate(ctx, reservationID)
        if err != nil {
            if errors.Is(err, ErrReservationNotFound) {
                return newError(KindNotFound, "reservation not found")
            }
            return err
        }
        if r.UserID != userID {
            return newError(KindForbidden, "reservation belongs to another user")
        }
        if r.Status != model.ReservationStatusConfirmed {
            return newError(KindInvalidTransition, fmt.Sprintf("cannot cancel a %s reservation", r.Status))
        }
        if !r.StartTime.After(now) {
            return newError(KindInvalidTransition, "reservation has already started")
        }
        if err := tx.UpdateReservationStatus(ctx, r.ID, model.ReservationStatusCancelled); err != nil {
            return err
        }
        // Release the seat hint only when no other confirmed
        // reservation still blocks the seat.
        blocked, err := tx.HasBlocking(ctx, r.SeatID, now)
        if err != nil {
            return err
        }
        if !blocked {
            if err := tx.SetSeatAvailability(ctx, r.SeatID, true); err != nil {
                return err
            }
        }
        r.Status = model.ReservationStatusCancelled
        res = r
        return nil
    })
    if err != nil {
        return nil, err
    }

    s.invalidate(ctx, res.RoomID)
    s.log.Info("reservation cancelled",
        zap.Uint64("reservation_id", res.ID),
        zap.Uint64("user_id", userID))
    return res, nil
}

// UserReservation is a reservation as surfaced to its owner: the stored
// row, the status projected against "now" and the check-in when one
// exists.
type UserReservation struct {
    Reservation     model.Reservation
    EffectiveStatus string
    CheckIn         *model.CheckIn
}

// ListByUser returns the user's reservations, newest first, each
// annotated with its effective status.
func (s *Service) ListByUser(ctx context.Context, userID uint64) ([]UserReservation, error) {
    now := s.now()
    rows, err := s.store.ReservationsByUser(ctx, userID)
    if err != nil {
        return nil, err
    }
    ids := make([]uint64, 0, len(rows))
    for _, r := range rows {
        ids = append(ids, r.ID)
    }
    checkIns, err := s.store.CheckInsByReservation(ctx, ids)
    if err != nil {
        return nil, err
    }
    out := make([]UserReservation, 0, len(rows))
    for _, r := range rows {
        ur := UserReservation{Reservation: r}
        if ci, ok := checkIns[r.ID]; ok {
            c := ci
            ur.CheckIn = &c
        }
        ur.EffectiveStatus = EffectiveStatus(&r, ur.CheckIn != nil, now)
        out = append(out, ur)
    }
    return out, nil
}

func (s *Service) invalidate(ctx context.Context, roomID uint64) {
    if s.cache != nil {
        s.cache.InvalidateRoom(ctx, roomID)
    }
}
