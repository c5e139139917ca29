package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

const reservationColumns = `id, user_id, room_id, seat_id, start_time, end_time, status, check_in_time, created_at, updated_at`

// conflictQuery matches any CONFIRMED reservation on the seat whose
// [start_time, end_time) window overlaps the candidate [start, end).
// Half-open semantics: touching endpoints do not overlap.
const conflictQuery = `SELECT EXISTS(
    SELECT 1 FROM reservations
    WHERE seat_id = ? AND status = 'CONFIRMED' AND start_time < ? AND end_time > ?
)`

const seatExistsQuery = `SELECT 1 FROM seats WHERE id = ?`

type rowQuerier interface {
    QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// hasConflict is shared by the plain and transactional variants.  It
// fails with ErrSeatNotFound for an unknown seat so callers cannot
// mistake a missing seat for an available one.
func hasConflict(ctx context.Context, q rowQuerier, seatID uint64, start, end time.Time) (bool, error) {
    var one int
    if err := q.QueryRowContext(ctx, seatExistsQuery, seatID).Scan(&one); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return false, reservation.ErrSeatNotFound
        }
        return false, err
    }
    var exists bool
    if err := q.QueryRowContext(ctx, conflictQuery, seatID, end, start).Scan(&exists); err != nil {
        return false, err
    }
    return exists, nil
}

// HasConflict reports whether a blocking reservation overlaps the
// candidate window on the given seat.
func (s *Store) HasConflict(ctx context.Context, seatID uint64, start, end time.Time) (bool, error) {
    return hasConflict(ctx, s.db, seatID, start, end)
}

// HasConflict is the in-transaction variant used inside the create
// critical section, after the seat row has been locked.
func (t *txStore) HasConflict(ctx context.Context, seatID uint64, start, end time.Time) (bool, error) {
    return hasConflict(ctx, t.tx, seatID, start, end)
}

// HasBlocking reports whether any CONFIRMED reservation on the seat is
// still live or upcoming as of the given instant.  Cancel uses it to
// decide whether the seat hint may be released.
func (t *txStore) HasBlocking(ctx context.Context, seatID uint64, asOf time.Time) (bool, error) {
    const q = `SELECT EXISTS(
        SELECT 1 FROM reservations
        WHERE seat_id = ? AND status = 'CONFIRMED' AND end_time > ?
    )`
    var exists bool
    if err := t.tx.QueryRowContext(ctx, q, seatID, asOf).Scan(&exists); err != nil {
        return false, err
    }
    return exists, nil
}

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
    var r model.Reservation
    var checkIn sql.NullTime
    err := scan(&r.ID, &r.UserID, &r.RoomID, &r.SeatID, &r.StartTime, &r.EndTime,
        &r.Status, &checkIn, &r.CreatedAt, &r.UpdatedAt)
    if err != nil {
        return nil, err
    }
    if checkIn.Valid {
        t := checkIn.Time
        r.CheckInTime = &t
    }
    return &r, nil
}

// InsertReservation persists a new reservation and reads the row back
// so database-side defaults (timestamps) are populated.
func (t *txStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
    const q = `INSERT INTO reservations (user_id, room_id, seat_id, start_time, end_time, status)
               VALUES (?, ?, ?, ?, ?, ?)`
    result, err := t.tx.ExecContext(ctx, q, r.UserID, r.RoomID, r.SeatID, r.StartTime, r.EndTime, r.Status)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    row, err := scanReservation(t.tx.QueryRowContext(ctx, sel, uint64(id)).Scan)
    if err != nil {
        return err
    }
    *r = *row
    return nil
}

// ReservationForUpdate loads a reservation and locks its row for the
// remainder of the transaction.
func (t *txStore) ReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ? FOR UPDATE`
    r, err := scanReservation(t.tx.QueryRowContext(ctx, q, id).Scan)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrReservationNotFound
        }
        return nil, err
    }
    return r, nil
}

// UpdateReservationStatus transitions the stored status.
func (t *txStore) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
    const q = `UPDATE reservations SET status = ? WHERE id = ?`
    _, err := t.tx.ExecContext(ctx, q, status, id)
    return err
}

// SetReservationCheckInTime stamps the check-in time on the row.
func (t *txStore) SetReservationCheckInTime(ctx context.Context, id uint64, at time.Time) error {
    const q = `UPDATE reservations SET check_in_time = ? WHERE id = ?`
    _, err := t.tx.ExecContext(ctx, q, at, id)
    return err
}

// ReservationsByUser lists a user's reservations, newest first.
func (s *Store) ReservationsByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations
               WHERE user_id = ? ORDER BY created_at DESC, id DESC`
    rows, err := s.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        r, err := scanReservation(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *r)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
