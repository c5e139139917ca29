package reservation

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "go.uber.org/zap"

    "github.com/studyhub/seat-reservation/internal/model"
)

// CheckInResult carries the reservation with its stamped check-in time
// alongside the newly created check-in row.
type CheckInResult struct {
    Reservation *model.Reservation
    CheckIn     *model.CheckIn
}

// CheckIn records attendance for a reservation at the caller-supplied
// instant.  It is legal only for the owning user, only while the
// reservation is CONFIRMED and live (start <= now <= end), and only
// once.  The attendance status is ON_TIME up to and including
// start+OnTimeGrace, LATE after.
func (s *Service) CheckIn(ctx context.Context, userID, reservationID uint64, now time.Time) (*CheckInResult, error) {
    now = now.UTC()
    var result *CheckInResult
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
            return newError(KindInvalidTransition,
                fmt.Sprintf("cannot check in to a %s reservation", strings.ToLower(r.Status)))
        }
        if existing, err := tx.CheckInByReservation(ctx, r.ID); err != nil {
            if !errors.Is(err, ErrCheckInNotFound) {
                return err
            }
        } else if existing != nil {
            return newError(KindAlreadyProcessed, "already checked in")
        }
        if now.Before(r.StartTime) {
            return newError(KindInvalidTransition, "reservation has not started yet")
        }
        if now.After(r.EndTime) {
            return newError(KindInvalidTransition, "reservation has already expired")
        }

        status := model.CheckInStatusOnTime
        if now.After(r.StartTime.Add(OnTimeGrace)) {
            status = model.CheckInStatusLate
        }
        ci := &model.CheckIn{
            ReservationID: r.ID,
            CheckInTime:   now,
            Status:        status,
        }
        if err := tx.InsertCheckIn(ctx, ci); err != nil {
            return err
        }
        if err := tx.SetReservationCheckInTime(ctx, r.ID, now); err != nil {
            return err
        }
        t := now
        r.CheckInTime = &t
        result = &CheckInResult{Reservation: r, CheckIn: ci}
        return nil
    })
    if err != nil {
        return nil, err
    }

    s.invalidate(ctx, result.Reservation.RoomID)
    s.log.Info("check-in recorded",
        zap.Uint64("reservation_id", reservationID),
        zap.Uint64("user_id", userID),
        zap.String("status", result.CheckIn.Status))
    return result, nil
}

// CheckOut stamps the checkout time on an existing check-in.  The
// check-in must belong to a reservation owned by the caller and must
// not already carry a checkout time.
func (s *Service) CheckOut(ctx context.Context, userID, checkInID uint64, now time.Time) (*model.CheckIn, error) {
    now = now.UTC()
    var out *model.CheckIn
    err := s.store.InTx(ctx, func(tx Tx) error {
        ci, err := tx.CheckInForUpdate(ctx, checkInID)
        if err != nil {
            if errors.Is(err, ErrCheckInNotFound) {
                return newError(KindNotFound, "check-in not found")
            }
            return err
        }
        r, err := tx.ReservationForUpdate(ctx, ci.ReservationID)
        if err != nil {
            return err
        }
        if r.UserID != userID {
            return newError(KindForbidden, "check-in belongs to another user")
        }
        if ci.CheckOutTime != nil {
            return newError(KindAlreadyProcessed, "already checked out")
        }
        if now.Before(ci.CheckInTime) {
            return newError(KindInvalidTransition, "checkout time precedes check-in time")
        }
        if err := tx.SetCheckOutTime(ctx, ci.ID, now); err != nil {
            return err
        }
        t := now
        ci.CheckOutTime = &t
        out = ci
        return nil
    })
    if err != nil {
        return nil, err
    }
    s.log.Info("check-out recorded",
        zap.Uint64("check_in_id", checkInID),
        zap.Uint64("user_id", userID))
    return out, nil
}
