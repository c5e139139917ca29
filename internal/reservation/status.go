package reservation

import (
    "time"

    "github.com/studyhub/seat-reservation/internal/model"
)

// EffectiveStatus projects the status of a reservation at the given
// instant.  COMPLETED and MISSED are never stored on the row; a
// CONFIRMED reservation whose window has fully elapsed surfaces as
// COMPLETED when the user checked in and MISSED when they never did.
// Stored terminal statuses pass through unchanged.
func EffectiveStatus(r *model.Reservation, checkedIn bool, now time.Time) string {
    if r.Status != model.ReservationStatusConfirmed {
        return r.Status
    }
    if r.EndTime.After(now) {
        return model.ReservationStatusConfirmed
    }
    if checkedIn || r.CheckInTime != nil {
        return model.ReservationStatusCompleted
    }
    return model.ReservationStatusMissed
}
