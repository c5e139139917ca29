package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

const seatColumns = `id, room_id, seat_number, is_available, created_at, updated_at`

// RoomSeats lists every seat of a room in ascending seat number.
func (s *Store) RoomSeats(ctx context.Context, roomID uint64) ([]model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats WHERE room_id = ? ORDER BY seat_number`
    rows, err := s.db.QueryContext(ctx, q, roomID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Seat, 0)
    for rows.Next() {
        var st model.Seat
        if err := rows.Scan(&st.ID, &st.RoomID, &st.SeatNumber, &st.IsAvailable, &st.CreatedAt, &st.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, st)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// SeatForUpdate loads a seat and locks its row until the transaction
// ends.  All concurrent create/cancel work on the same seat serializes
// behind this lock.
func (t *txStore) SeatForUpdate(ctx context.Context, seatID uint64) (*model.Seat, error) {
    const q = `SELECT ` + seatColumns + ` FROM seats WHERE id = ? FOR UPDATE`
    var st model.Seat
    err := t.tx.QueryRowContext(ctx, q, seatID).Scan(
        &st.ID, &st.RoomID, &st.SeatNumber, &st.IsAvailable, &st.CreatedAt, &st.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrSeatNotFound
        }
        return nil, err
    }
    return &st, nil
}

// SetSeatAvailability flips the denormalized availability hint.
func (t *txStore) SetSeatAvailability(ctx context.Context, seatID uint64, available bool) error {
    const q = `UPDATE seats SET is_available = ? WHERE id = ?`
    res, err := t.tx.ExecContext(ctx, q, available, seatID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    // RowsAffected is 0 both for a missing seat and for a no-op write,
    // so confirm existence before reporting not found.
    if n == 0 {
        var one int
        if err := t.tx.QueryRowContext(ctx, `SELECT 1 FROM seats WHERE id = ?`, seatID).Scan(&one); err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return reservation.ErrSeatNotFound
            }
            return err
        }
    }
    return nil
}
