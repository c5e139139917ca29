package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/studyhub/seat-reservation/internal/queue"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

// CheckInHandler exposes check-in and check-out over HTTP.
type CheckInHandler struct {
    Svc *reservation.Service
}

// NewCheckInHandler constructs a CheckInHandler.
func NewCheckInHandler(svc *reservation.Service) *CheckInHandler {
    if svc == nil {
        panic("nil service passed to NewCheckInHandler")
    }
    return &CheckInHandler{Svc: svc}
}

// CheckIn handles POST /v1/reservations/:id/checkin.  The reservation
// must be confirmed, live, owned by the caller and not yet checked in.
// The response distinguishes on-time from late attendance.
func (h *CheckInHandler) CheckIn(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    resID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    result, err := h.Svc.CheckIn(c.Request().Context(), userID, resID, time.Now().UTC())
    if err != nil {
        return writeError(c, err)
    }
    publishReservationEvent(queue.TypeCheckInRecorded, result.Reservation, result.CheckIn.Status)
    return c.JSON(http.StatusCreated, echo.Map{
        "reservation": viewOfReservation(result.Reservation, result.Reservation.Status),
        "check_in":    viewOfCheckIn(result.CheckIn),
    })
}

// CheckOut handles PATCH /v1/checkins/:id/checkout.  It stamps the
// checkout time on the caller's check-in; a second checkout fails.
func (h *CheckInHandler) CheckOut(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ciID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check-in id"})
    }
    ci, err := h.Svc.CheckOut(c.Request().Context(), userID, ciID, time.Now().UTC())
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": viewOfCheckIn(ci)})
}
