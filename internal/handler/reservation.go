package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/queue"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.  All
// methods assume JWT authentication and role validation have already
// run; they return 401 only when the user ID cannot be extracted from
// the context.
type ReservationHandler struct {
    Svc *reservation.Service
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(svc *reservation.Service) *ReservationHandler {
    if svc == nil {
        panic("nil service passed to NewReservationHandler")
    }
    return &ReservationHandler{Svc: svc}
}

// reservationView is the wire shape of a reservation.  Status carries
// the effective (projected) status where the endpoint computes one,
// otherwise the stored status.
type reservationView struct {
    ID          uint64        `json:"id"`
    UserID      uint64        `json:"user_id"`
    RoomID      uint64        `json:"room_id"`
    SeatID      uint64        `json:"seat_id"`
    StartTime   string        `json:"start_time"`
    EndTime     string        `json:"end_time"`
    Status      string        `json:"status"`
    CheckInTime *string       `json:"check_in_time,omitempty"`
    CheckIn     *checkInView  `json:"check_in,omitempty"`
}

type checkInView struct {
    ID            uint64  `json:"id"`
    ReservationID uint64  `json:"reservation_id"`
    CheckInTime   string  `json:"check_in_time"`
    CheckOutTime  *string `json:"check_out_time,omitempty"`
    Status        string  `json:"status"`
}

func viewOfReservation(r *model.Reservation, status string) reservationView {
    v := reservationView{
        ID:        r.ID,
        UserID:    r.UserID,
        RoomID:    r.RoomID,
        SeatID:    r.SeatID,
        StartTime: r.StartTime.UTC().Format(time.RFC3339),
        EndTime:   r.EndTime.UTC().Format(time.RFC3339),
        Status:    status,
    }
    if r.CheckInTime != nil {
        s := r.CheckInTime.UTC().Format(time.RFC3339)
        v.CheckInTime = &s
    }
    return v
}

func viewOfCheckIn(ci *model.CheckIn) *checkInView {
    v := &checkInView{
        ID:            ci.ID,
        ReservationID: ci.ReservationID,
        CheckInTime:   ci.CheckInTime.UTC().Format(time.RFC3339),
        Status:        ci.Status,
    }
    if ci.CheckOutTime != nil {
        s := ci.CheckOutTime.UTC().Format(time.RFC3339)
        v.CheckOutTime = &s
    }
    return v
}

func publishReservationEvent(eventType string, r *model.Reservation, checkInStatus string) {
    ev := queue.ReservationEvent{
        ReservationID: r.ID,
        UserID:        r.UserID,
        RoomID:        r.RoomID,
        SeatID:        r.SeatID,
        StartTime:     r.StartTime.UTC().Format(time.RFC3339),
        EndTime:       r.EndTime.UTC().Format(time.RFC3339),
        CheckInStatus: checkInStatus,
    }
    // Fire and forget; the broker being down must not fail the request.
    go func() { _ = queue.Publish(context.Background(), eventType, ev) }()
}

// Create handles POST /v1/reservations.  The body must contain
// room_id, seat_id and an RFC3339 start_time/end_time pair.  On
// success it returns 201 with the confirmed reservation.
func (h *ReservationHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        RoomID    uint64 `json:"room_id"`
        SeatID    uint64 `json:"seat_id"`
        StartTime string `json:"start_time"`
        EndTime   string `json:"end_time"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RoomID == 0 || body.SeatID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and seat_id are required"})
    }
    start, err := time.Parse(time.RFC3339, body.StartTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must be RFC3339"})
    }
    end, err := time.Parse(time.RFC3339, body.EndTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_time must be RFC3339"})
    }

    res, err := h.Svc.Create(c.Request().Context(), userID, body.RoomID, body.SeatID, start, end)
    if err != nil {
        return writeError(c, err)
    }
    publishReservationEvent(queue.TypeReservationConfirmed, res, "")
    return c.JSON(http.StatusCreated, echo.Map{"item": viewOfReservation(res, res.Status)})
}

// ListMine handles GET /v1/my-reservations.  Each reservation carries
// its effective status (COMPLETED/MISSED are projected, never stored)
// and its check-in when one exists.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.Svc.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return writeError(c, err)
    }
    views := make([]reservationView, 0, len(items))
    for _, it := range items {
        v := viewOfReservation(&it.Reservation, it.EffectiveStatus)
        if it.CheckIn != nil {
            v.CheckIn = viewOfCheckIn(it.CheckIn)
        }
        views = append(views, v)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// Cancel handles DELETE /v1/reservations/:id.  Only the owning user
// may cancel, and only before the reservation starts.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    res, err := h.Svc.Cancel(c.Request().Context(), userID, resID)
    if err != nil {
        return writeError(c, err)
    }
    publishReservationEvent(queue.TypeReservationCancelled, res, "")
    return c.JSON(http.StatusOK, echo.Map{"item": viewOfReservation(res, res.Status)})
}
