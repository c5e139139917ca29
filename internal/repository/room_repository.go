package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

const roomColumns = `id, name, location, description, capacity, status, created_at, updated_at`

func scanRoom(row *sql.Row) (*model.Room, error) {
    var r model.Room
    var desc sql.NullString
    err := row.Scan(&r.ID, &r.Name, &r.Location, &desc, &r.Capacity, &r.Status, &r.CreatedAt, &r.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, reservation.ErrRoomNotFound
        }
        return nil, err
    }
    if desc.Valid {
        d := desc.String
        r.Description = &d
    }
    return &r, nil
}

// RoomByID loads a single room.
func (s *Store) RoomByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    return scanRoom(s.db.QueryRowContext(ctx, q, id))
}

// ListRooms returns every room ordered by ID for the public browse
// endpoints.  Ordering is fixed so repeated calls compare equal.
func (s *Store) ListRooms(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`
    rows, err := s.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Room, 0)
    for rows.Next() {
        var r model.Room
        var desc sql.NullString
        if err := rows.Scan(&r.ID, &r.Name, &r.Location, &desc, &r.Capacity, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
            return nil, err
        }
        if desc.Valid {
            d := desc.String
            r.Description = &d
        }
        out = append(out, r)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
