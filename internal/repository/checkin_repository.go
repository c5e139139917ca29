package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"

    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

const checkInColumns = `id, reservation_id, check_in_time, check_out_time, status, created_at`

func scanCheckIn(scan func(dest ...interface{}) error) (*model.CheckIn, error) {
    var ci model.CheckIn
    var out sql.NullTime
    err := scan(&ci.ID, &ci.ReservationID, &ci.CheckInTime, &out, &ci.Status, &ci.CreatedAt)
    if err != nil {
        return nil, err
    }
    if out.Valid {
        t := out.Time
        ci.CheckOutTime = &t
    }
    return &ci, nil
}

// CheckInByReservation loads the check-in belonging to a reservation.
// The reservation_id column is unique, so at most one row matches.
func (t *txStore) CheckInByReservation(ctx context.Context, reservationID uint64) (*model.CheckIn, error) {
    const q = `SELECT ` + checkInColumns + ` FROM check_ins WHERE reservation_id = ?`
    ci, err := scanCheckIn(t.tx.QueryRowContext(ctx, q, reservationID).Scan)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrCheckInNotFound
        }
        return nil, err
    }
    return ci, nil
}

// InsertCheckIn persists a new check-in.  The UNIQUE constraint on
// reservation_id backs up the in-transaction duplicate check; a
// violation is reported as already processed rather than a raw error.
func (t *txStore) InsertCheckIn(ctx context.Context, ci *model.CheckIn) error {
    const q = `INSERT INTO check_ins (reservation_id, check_in_time, status) VALUES (?, ?, ?)`
    result, err := t.tx.ExecContext(ctx, q, ci.ReservationID, ci.CheckInTime, ci.Status)
    if err != nil {
        if strings.Contains(err.Error(), "Duplicate entry") {
            return &reservation.Error{Kind: reservation.KindAlreadyProcessed, Message: "already checked in"}
        }
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    ci.ID = uint64(id)
    return nil
}

// CheckInForUpdate loads a check-in by its own ID and locks its row.
func (t *txStore) CheckInForUpdate(ctx context.Context, id uint64) (*model.CheckIn, error) {
    const q = `SELECT ` + checkInColumns + ` FROM check_ins WHERE id = ? FOR UPDATE`
    ci, err := scanCheckIn(t.tx.QueryRowContext(ctx, q, id).Scan)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrCheckInNotFound
        }
        return nil, err
    }
    return ci, nil
}

// SetCheckOutTime stamps the checkout time.
func (t *txStore) SetCheckOutTime(ctx context.Context, id uint64, at time.Time) error {
    const q = `UPDATE check_ins SET check_out_time = ? WHERE id = ?`
    _, err := t.tx.ExecContext(ctx, q, at, id)
    return err
}

// CheckInsByReservation loads check-ins for a set of reservations in
// one query, keyed by reservation ID.
func (s *Store) CheckInsByReservation(ctx context.Context, reservationIDs []uint64) (map[uint64]model.CheckIn, error) {
    out := make(map[uint64]model.CheckIn, len(reservationIDs))
    if len(reservationIDs) == 0 {
        return out, nil
    }
    placeholders := make([]string, 0, len(reservationIDs))
    args := make([]interface{}, 0, len(reservationIDs))
    for _, id := range reservationIDs {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    query := `SELECT ` + checkInColumns + ` FROM check_ins WHERE reservation_id IN (` +
        strings.Join(placeholders, ",") + `)`
    rows, err := s.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        ci, err := scanCheckIn(rows.Scan)
        if err != nil {
            return nil, err
        }
        out[ci.ReservationID] = *ci
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
