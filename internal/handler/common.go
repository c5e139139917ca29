package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/studyhub/seat-reservation/internal/reservation"
)

// getUserID extracts the authenticated user identifier placed in the
// context by the JWT middleware.  The claim may arrive as a number or
// a string depending on the issuer.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

// writeError maps a failed core operation onto an HTTP response.  The
// reason-specific message from the typed error is passed through so
// callers can tell a conflicting window from an unbookable room.
// Unclassified errors surface as opaque 500s.
func writeError(c echo.Context, err error) error {
    kind := reservation.KindOf(err)
    var status int
    switch kind {
    case reservation.KindInvalidWindow, reservation.KindSeatMismatch:
        status = http.StatusBadRequest
    case reservation.KindForbidden:
        status = http.StatusForbidden
    case reservation.KindNotFound:
        status = http.StatusNotFound
    case reservation.KindConflict, reservation.KindRoomNotBookable,
        reservation.KindInvalidTransition, reservation.KindAlreadyProcessed:
        status = http.StatusConflict
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    return c.JSON(status, echo.Map{"error": err.Error()})
}
