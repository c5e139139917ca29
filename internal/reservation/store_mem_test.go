package reservation

import (
    "context"
    "sort"
    "sync"
    "time"

    "github.com/studyhub/seat-reservation/internal/model"
)

// memStore is an in-memory Store used by the engine tests.  InTx holds
// a single mutex for the whole callback, which gives the same
// serialization guarantee the SQL store gets from its row locks.
type memStore struct {
    mu           sync.Mutex
    rooms        map[uint64]model.Room
    seats        map[uint64]model.Seat
    reservations map[uint64]model.Reservation
    checkIns     map[uint64]model.CheckIn
    nextID       uint64
}

func newMemStore() *memStore {
    return &memStore{
        rooms:        make(map[uint64]model.Room),
        seats:        make(map[uint64]model.Seat),
        reservations: make(map[uint64]model.Reservation),
        checkIns:     make(map[uint64]model.CheckIn),
    }
}

func (m *memStore) addRoom(r model.Room) model.Room {
    m.nextID++
    r.ID = m.nextID
    m.rooms[r.ID] = r
    return r
}

func (m *memStore) addSeat(s model.Seat) model.Seat {
    m.nextID++
    s.ID = m.nextID
    m.seats[s.ID] = s
    return s
}

func (m *memStore) RoomByID(_ context.Context, id uint64) (*model.Room, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    r, ok := m.rooms[id]
    if !ok {
        return nil, ErrRoomNotFound
    }
    return &r, nil
}

func (m *memStore) RoomSeats(_ context.Context, roomID uint64) ([]model.Seat, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]model.Seat, 0)
    for _, s := range m.seats {
        if s.RoomID == roomID {
            out = append(out, s)
        }
    }
    // ascending seat number, mirrors the SQL ORDER BY
    sort.Slice(out, func(i, j int) bool { return out[i].SeatNumber < out[j].SeatNumber })
    return out, nil
}

func (m *memStore) hasConflictLocked(seatID uint64, start, end time.Time) (bool, error) {
    if _, ok := m.seats[seatID]; !ok {
        return false, ErrSeatNotFound
    }
    for _, r := range m.reservations {
        if r.SeatID != seatID || r.Status != model.ReservationStatusConfirmed {
            continue
        }
        if start.Before(r.EndTime) && r.StartTime.Before(end) {
            return true, nil
        }
    }
    return false, nil
}

func (m *memStore) HasConflict(_ context.Context, seatID uint64, start, end time.Time) (bool, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.hasConflictLocked(seatID, start, end)
}

func (m *memStore) ReservationsByUser(_ context.Context, userID uint64) ([]model.Reservation, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make([]model.Reservation, 0)
    for id := m.nextID; id > 0; id-- {
        if r, ok := m.reservations[id]; ok && r.UserID == userID {
            out = append(out, r)
        }
    }
    return out, nil
}

func (m *memStore) CheckInsByReservation(_ context.Context, ids []uint64) (map[uint64]model.CheckIn, error) {
    m.mu.Lock()
    defer m.mu.Unlock()
    out := make(map[uint64]model.CheckIn)
    for _, id := range ids {
        for _, ci := range m.checkIns {
            if ci.ReservationID == id {
                out[id] = ci
            }
        }
    }
    return out, nil
}

func (m *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
    m.mu.Lock()
    defer m.mu.Unlock()
    return fn(&memTx{s: m})
}

type memTx struct {
    s *memStore
}

func (t *memTx) SeatForUpdate(_ context.Context, seatID uint64) (*model.Seat, error) {
    s, ok := t.s.seats[seatID]
    if !ok {
        return nil, ErrSeatNotFound
    }
    return &s, nil
}

func (t *memTx) HasConflict(_ context.Context, seatID uint64, start, end time.Time) (bool, error) {
    return t.s.hasConflictLocked(seatID, start, end)
}

func (t *memTx) HasBlocking(_ context.Context, seatID uint64, asOf time.Time) (bool, error) {
    for _, r := range t.s.reservations {
        if r.SeatID == seatID && r.Status == model.ReservationStatusConfirmed && r.EndTime.After(asOf) {
            return true, nil
        }
    }
    return false, nil
}

func (t *memTx) InsertReservation(_ context.Context, r *model.Reservation) error {
    t.s.nextID++
    r.ID = t.s.nextID
    r.CreatedAt = time.Now().UTC()
    t.s.reservations[r.ID] = *r
    return nil
}

func (t *memTx) SetSeatAvailability(_ context.Context, seatID uint64, available bool) error {
    s, ok := t.s.seats[seatID]
    if !ok {
        return ErrSeatNotFound
    }
    s.IsAvailable = available
    t.s.seats[seatID] = s
    return nil
}

func (t *memTx) ReservationForUpdate(_ context.Context, id uint64) (*model.Reservation, error) {
    r, ok := t.s.reservations[id]
    if !ok {
        return nil, ErrReservationNotFound
    }
    return &r, nil
}

func (t *memTx) UpdateReservationStatus(_ context.Context, id uint64, status string) error {
    r, ok := t.s.reservations[id]
    if !ok {
        return ErrReservationNotFound
    }
    r.Status = status
    t.s.reservations[id] = r
    return nil
}

func (t *memTx) SetReservationCheckInTime(_ context.Context, id uint64, at time.Time) error {
    r, ok := t.s.reservations[id]
    if !ok {
        return ErrReservationNotFound
    }
    ts := at
    r.CheckInTime = &ts
    t.s.reservations[id] = r
    return nil
}

func (t *memTx) CheckInByReservation(_ context.Context, reservationID uint64) (*model.CheckIn, error) {
    for _, ci := range t.s.checkIns {
        if ci.ReservationID == reservationID {
            c := ci
            return &c, nil
        }
    }
    return nil, ErrCheckInNotFound
}

func (t *memTx) InsertCheckIn(_ context.Context, ci *model.CheckIn) error {
    t.s.nextID++
    ci.ID = t.s.nextID
    ci.CreatedAt = time.Now().UTC()
    t.s.checkIns[ci.ID] = *ci
    return nil
}

func (t *memTx) CheckInForUpdate(_ context.Context, id uint64) (*model.CheckIn, error) {
    ci, ok := t.s.checkIns[id]
    if !ok {
        return nil, ErrCheckInNotFound
    }
    return &ci, nil
}

func (t *memTx) SetCheckOutTime(_ context.Context, id uint64, at time.Time) error {
    ci, ok := t.s.checkIns[id]
    if !ok {
        return ErrCheckInNotFound
    }
    ts := at
    ci.CheckOutTime = &ts
    t.s.checkIns[id] = ci
    return nil
}

// spyInvalidator records which rooms were invalidated.
type spyInvalidator struct {
    mu    sync.Mutex
    rooms []uint64
}

func (s *spyInvalidator) InvalidateRoom(_ context.Context, roomID uint64) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.rooms = append(s.rooms, roomID)
}
