package reservation

import (
    "context"
    "sync"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    "github.com/studyhub/seat-reservation/internal/model"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// newTestService builds a service over a fresh memStore with a frozen
// clock and one available room with two seats.
func newTestService(t *testing.T) (*Service, *memStore, *spyInvalidator, model.Room, []model.Seat) {
    t.Helper()
    store := newMemStore()
    room := store.addRoom(model.Room{Name: "Quiet Room", Capacity: 2, Status: model.RoomStatusAvailable})
    s1 := store.addSeat(model.Seat{RoomID: room.ID, SeatNumber: 1, IsAvailable: true})
    s2 := store.addSeat(model.Seat{RoomID: room.ID, SeatNumber: 2, IsAvailable: true})
    spy := &spyInvalidator{}
    svc := NewService(store, spy, zap.NewNop())
    svc.now = func() time.Time { return testNow }
    return svc, store, spy, room, []model.Seat{s1, s2}
}

func window(startOffset, endOffset time.Duration) (time.Time, time.Time) {
    return testNow.Add(startOffset), testNow.Add(endOffset)
}

func TestCreateReservation(t *testing.T) {
    svc, store, spy, room, seats := newTestService(t)
    ctx := context.Background()

    start, end := window(time.Hour, 2*time.Hour)
    res, err := svc.Create(ctx, 7, room.ID, seats[0].ID, start, end)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationStatusConfirmed, res.Status)
    assert.Equal(t, uint64(7), res.UserID)
    assert.NotZero(t, res.ID)

    // seat hint flipped and cache invalidated
    assert.False(t, store.seats[seats[0].ID].IsAvailable)
    assert.Equal(t, []uint64{room.ID}, spy.rooms)
}

func TestCreateRejectsInvalidWindows(t *testing.T) {
    svc, _, _, room, seats := newTestService(t)
    ctx := context.Background()

    cases := []struct {
        name       string
        start, end time.Time
    }{
        {"start equals end", testNow.Add(time.Hour), testNow.Add(time.Hour)},
        {"start after end", testNow.Add(2 * time.Hour), testNow.Add(time.Hour)},
        {"start in the past", testNow.Add(-time.Minute), testNow.Add(time.Hour)},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := svc.Create(ctx, 7, room.ID, seats[0].ID, tc.start, tc.end)
            assert.Equal(t, KindInvalidWindow, KindOf(err))
        })
    }
}

func TestCreateStartAtNowIsAccepted(t *testing.T) {
    svc, _, _, room, seats := newTestService(t)
    _, err := svc.Create(context.Background(), 7, room.ID, seats[0].ID, testNow, testNow.Add(time.Hour))
    assert.NoError(t, err)
}

func TestCreateRoomGates(t *testing.T) {
    svc, store, _, _, _ := newTestService(t)
    ctx := context.Background()
    start, end := window(time.Hour, 2*time.Hour)

    maint := store.addRoom(model.Room{Name: "M", Capacity: 1, Status: model.RoomStatusMaintenance})
    maintSeat := store.addSeat(model.Seat{RoomID: maint.ID, SeatNumber: 1, IsAvailable: true})
    _, err := svc.Create(ctx, 7, maint.ID, maintSeat.ID, start, end)
    assert.Equal(t, KindRoomNotBookable, KindOf(err))
    assert.Contains(t, err.Error(), "maintenance")

    closed := store.addRoom(model.Room{Name: "C", Capacity: 1, Status: model.RoomStatusClosed})
    closedSeat := store.addSeat(model.Seat{RoomID: closed.ID, SeatNumber: 1, IsAvailable: true})
    _, err = svc.Create(ctx, 7, closed.ID, closedSeat.ID, start, end)
    assert.Equal(t, KindRoomNotBookable, KindOf(err))
    assert.Contains(t, err.Error(), "closed")

    _, err = svc.Create(ctx, 7, 9999, closedSeat.ID, start, end)
    assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateSeatMismatch(t *testing.T) {
    svc, store, _, room, _ := newTestService(t)
    other := store.addRoom(model.Room{Name: "Other", Capacity: 1, Status: model.RoomStatusAvailable})
    otherSeat := store.addSeat(model.Seat{RoomID: other.ID, SeatNumber: 1, IsAvailable: true})

    start, end := window(time.Hour, 2*time.Hour)
    _, err := svc.Create(context.Background(), 7, room.ID, otherSeat.ID, start, end)
    assert.Equal(t, KindSeatMismatch, KindOf(err))
}

func TestCreateConflictBoundaries(t *testing.T) {
    svc, store, _, room, seats := newTestService(t)
    ctx := context.Background()

    // Seed a confirmed reservation at [10:00, 11:00).
    base := testNow.Add(time.Hour)
    _, err := svc.Create(ctx, 7, room.ID, seats[0].ID, base, base.Add(time.Hour))
    require.NoError(t, err)
    // The seat hint is down, but the hint speaks only about "now";
    // non-overlapping windows on the same seat must still book.
    require.False(t, store.seats[seats[0].ID].IsAvailable)

    // Overlapping window fails with Conflict.
    _, err = svc.Create(ctx, 8, room.ID, seats[0].ID, base.Add(30*time.Minute), base.Add(90*time.Minute))
    assert.Equal(t, KindConflict, KindOf(err))

    // Touching windows on either side succeed: [11:00, 12:00) ...
    _, err = svc.Create(ctx, 8, room.ID, seats[0].ID, base.Add(time.Hour), base.Add(2*time.Hour))
    assert.NoError(t, err)

    // ... and [09:00, 10:00).
    _, err = svc.Create(ctx, 9, room.ID, seats[0].ID, testNow, base)
    assert.NoError(t, err)

    // A disjoint future window on the same seat succeeds too.
    _, err = svc.Create(ctx, 10, room.ID, seats[0].ID, base.Add(4*time.Hour), base.Add(5*time.Hour))
    assert.NoError(t, err)

    // A different seat in the same room is unaffected.
    _, err = svc.Create(ctx, 8, room.ID, seats[1].ID, base.Add(30*time.Minute), base.Add(90*time.Minute))
    assert.NoError(t, err)
}

func TestConflictDetectorHalfOpenSemantics(t *testing.T) {
    _, store, _, _, seats := newTestService(t)
    ctx := context.Background()

    base := testNow.Add(time.Hour)
    require.NoError(t, store.InTx(ctx, func(tx Tx) error {
        return tx.InsertReservation(ctx, &model.Reservation{
            UserID: 7, RoomID: seats[0].RoomID, SeatID: seats[0].ID,
            StartTime: base, EndTime: base.Add(time.Hour),
            Status: model.ReservationStatusConfirmed,
        })
    }))

    cases := []struct {
        name       string
        start, end time.Time
        want       bool
    }{
        {"inside", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
        {"covering", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
        {"identical", base, base.Add(time.Hour), true},
        {"touching end", base.Add(time.Hour), base.Add(2 * time.Hour), false},
        {"touching start", base.Add(-time.Hour), base, false},
        {"disjoint", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got, err := store.HasConflict(ctx, seats[0].ID, tc.start, tc.end)
            require.NoError(t, err)
            assert.Equal(t, tc.want, got)
        })
    }

    // A missing seat is an error, never "available".
    _, err := store.HasConflict(ctx, 9999, base, base.Add(time.Hour))
    assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestCancelReservation(t *testing.T) {
    svc, store, spy, room, seats := newTestService(t)
    ctx := context.Background()

    start, end := window(time.Hour, 2*time.Hour)
    res, err := svc.Create(ctx, 7, room.ID, seats[0].ID, start, end)
    require.NoError(t, err)

    // Wrong user is forbidden.
    _, err = svc.Cancel(ctx, 8, res.ID)
    assert.Equal(t, KindForbidden, KindOf(err))

    got, err := svc.Cancel(ctx, 7, res.ID)
    require.NoError(t, err)
    assert.Equal(t, model.ReservationStatusCancelled, got.Status)
    assert.True(t, store.seats[seats[0].ID].IsAvailable)
    assert.Len(t, spy.rooms, 2) // create + cancel

    // Double cancel fails and leaves the seat hint untouched.
    _, err = svc.Cancel(ctx, 7, res.ID)
    assert.Equal(t, KindInvalidTransition, KindOf(err))
    assert.True(t, store.seats[seats[0].ID].IsAvailable)

    _, err = svc.Cancel(ctx, 7, 9999)
    assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCancelAfterStartRejected(t *testing.T) {
    svc, store, _, room, seats := newTestService(t)
    ctx := context.Background()

    // Seed a reservation already underway.
    var id uint64
    require.NoError(t, store.InTx(ctx, func(tx Tx) error {
        r := &model.Reservation{
            UserID: 7, RoomID: room.ID, SeatID: seats[0].ID,
            StartTime: testNow.Add(-time.Hour), EndTime: testNow.Add(time.Hour),
            Status: model.ReservationStatusConfirmed,
        }
        if err := tx.InsertReservation(ctx, r); err != nil {
            return err
        }
        id = r.ID
        return nil
    }))

    _, err := svc.Cancel(ctx, 7, id)
    assert.Equal(t, KindInvalidTransition, KindOf(err))
}

func TestCancelKeepsSeatHeldWhileOthersRemain(t *testing.T) {
    svc, store, _, room, seats := newTestService(t)
    ctx := context.Background()

    // Two back-to-back reservations on the same seat.
    base := testNow.Add(time.Hour)
    first, err := svc.Create(ctx, 7, room.ID, seats[0].ID, base, base.Add(time.Hour))
    require.NoError(t, err)
    second, err := svc.Create(ctx, 8, room.ID, seats[0].ID, base.Add(time.Hour), base.Add(2*time.Hour))
    require.NoError(t, err)

    // Cancelling one leaves the hint down while the other still blocks.
    _, err = svc.Cancel(ctx, 7, first.ID)
    require.NoError(t, err)
    assert.False(t, store.seats[seats[0].ID].IsAvailable)

    // Cancelling the last blocking reservation releases the hint.
    _, err = svc.Cancel(ctx, 8, second.ID)
    require.NoError(t, err)
    assert.True(t, store.seats[seats[0].ID].IsAvailable)
}

func TestCancelThenRecreateSameWindow(t *testing.T) {
    svc, _, _, room, seats := newTestService(t)
    ctx := context.Background()

    start, end := window(time.Hour, 2*time.Hour)
    res, err := svc.Create(ctx, 7, room.ID, seats[0].ID, start, end)
    require.NoError(t, err)
    _, err = svc.Cancel(ctx, 7, res.ID)
    require.NoError(t, err)

    // The seat is genuinely available again for the same window.
    again, err := svc.Create(ctx, 8, room.ID, seats[0].ID, start, end)
    require.NoError(t, err)
    assert.NotEqual(t, res.ID, again.ID)
}

func TestConcurrentCreateExactlyOneWins(t *testing.T) {
    svc, _, _, room, seats := newTestService(t)
    ctx := context.Background()
    start, end := window(time.Hour, 2*time.Hour)

    const n = 8
    var wg sync.WaitGroup
    errs := make([]error, n)
    for i := 0; i < n; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = svc.Create(ctx, uint64(100+i), room.ID, seats[0].ID, start, end)
        }(i)
    }
    wg.Wait()

    var wins, conflicts int
    for _, err := range errs {
        switch {
        case err == nil:
            wins++
        case KindOf(err) == KindConflict:
            conflicts++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    assert.Equal(t, 1, wins)
    assert.Equal(t, n-1, conflicts)
}

func TestListByUser(t *testing.T) {
    svc, _, _, room, seats := newTestService(t)
    ctx := context.Background()

    r1, err := svc.Create(ctx, 7, room.ID, seats[0].ID, testNow.Add(time.Hour), testNow.Add(2*time.Hour))
    require.NoError(t, err)
    r2, err := svc.Create(ctx, 7, room.ID, seats[1].ID, testNow.Add(3*time.Hour), testNow.Add(4*time.Hour))
    require.NoError(t, err)
    _, err = svc.Create(ctx, 8, room.ID, seats[1].ID, testNow.Add(5*time.Hour), testNow.Add(6*time.Hour))
    require.NoError(t, err)

    items, err := svc.ListByUser(ctx, 7)
    require.NoError(t, err)
    require.Len(t, items, 2)
    // newest first
    assert.Equal(t, r2.ID, items[0].Reservation.ID)
    assert.Equal(t, r1.ID, items[1].Reservation.ID)
    assert.Equal(t, model.ReservationStatusConfirmed, items[0].EffectiveStatus)
    assert.Nil(t, items[0].CheckIn)
}
