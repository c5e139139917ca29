// This file defines the public browse handlers.  These routes allow
// unauthenticated users to inspect rooms, their seats and seat
// availability for a window before authenticating to reserve.  All
// three reads go through the query cache layer; entries are advisory
// and every miss falls back to the database.
package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/studyhub/seat-reservation/internal/cache"
    "github.com/studyhub/seat-reservation/internal/config"
    "github.com/studyhub/seat-reservation/internal/model"
    "github.com/studyhub/seat-reservation/internal/reservation"
)

// Catalog is the read-only room/seat lookup surface the browse
// handlers need.  The SQL store satisfies it.
type Catalog interface {
    ListRooms(ctx context.Context) ([]model.Room, error)
    RoomByID(ctx context.Context, id uint64) (*model.Room, error)
    RoomSeats(ctx context.Context, roomID uint64) ([]model.Seat, error)
}

// BrowseHandler aggregates the catalog, the availability calculator
// and the cache for unauthenticated browsing.
type BrowseHandler struct {
    Catalog Catalog
    Svc     *reservation.Service
    Cache   *cache.Cache
}

// NewBrowseHandler constructs a BrowseHandler.  ch may be inert; a nil
// ch is replaced with an inert cache so the read paths need no guards.
func NewBrowseHandler(catalog Catalog, svc *reservation.Service, ch *cache.Cache) *BrowseHandler {
    if catalog == nil || svc == nil {
        panic("nil dependency passed to NewBrowseHandler")
    }
    if ch == nil {
        ch = cache.New(nil, config.CacheConfig{}, nil)
    }
    return &BrowseHandler{Catalog: catalog, Svc: svc, Cache: ch}
}

// roomView is a room as exposed publicly.
type roomView struct {
    ID          uint64     `json:"id"`
    Name        string     `json:"name"`
    Location    string     `json:"location"`
    Description *string    `json:"description,omitempty"`
    Capacity    uint32     `json:"capacity"`
    Status      string     `json:"status"`
    Seats       []seatView `json:"seats,omitempty"`
}

type seatView struct {
    ID          uint64 `json:"id"`
    SeatNumber  uint32 `json:"seat_number"`
    IsAvailable bool   `json:"is_available"`
}

func viewOfRoom(r *model.Room) roomView {
    return roomView{
        ID:          r.ID,
        Name:        r.Name,
        Location:    r.Location,
        Description: r.Description,
        Capacity:    r.Capacity,
        Status:      r.Status,
    }
}

// ListRooms handles GET /v1/rooms.
func (h *BrowseHandler) ListRooms(c echo.Context) error {
    ctx := c.Request().Context()
    key := h.Cache.RoomListKey()
    var cached []roomView
    if h.Cache.GetJSON(ctx, key, &cached) {
        return c.JSON(http.StatusOK, echo.Map{"items": cached})
    }
    rooms, err := h.Catalog.ListRooms(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load rooms"})
    }
    views := make([]roomView, 0, len(rooms))
    for i := range rooms {
        views = append(views, viewOfRoom(&rooms[i]))
    }
    h.Cache.SetJSON(ctx, key, views, h.Cache.RoomTTL())
    return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// GetRoom handles GET /v1/rooms/:id.  The detail view includes the
// room's seats with their denormalized availability hint; clients
// needing window-specific truth must call the availability endpoint.
func (h *BrowseHandler) GetRoom(c echo.Context) error {
    roomID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    ctx := c.Request().Context()
    key := h.Cache.RoomDetailKey(roomID)
    var cached roomView
    if h.Cache.GetJSON(ctx, key, &cached) {
        return c.JSON(http.StatusOK, echo.Map{"item": cached})
    }
    room, err := h.Catalog.RoomByID(ctx, roomID)
    if err != nil {
        return writeError(c, roomLookupError(err))
    }
    seats, err := h.Catalog.RoomSeats(ctx, roomID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
    }
    view := viewOfRoom(room)
    view.Seats = make([]seatView, 0, len(seats))
    for _, s := range seats {
        view.Seats = append(view.Seats, seatView{ID: s.ID, SeatNumber: s.SeatNumber, IsAvailable: s.IsAvailable})
    }
    h.Cache.SetJSON(ctx, key, view, h.Cache.RoomTTL())
    return c.JSON(http.StatusOK, echo.Map{"item": view})
}

// Availability handles GET /v1/rooms/:id/availability?start=..&end=..
// with RFC3339 instants.  Seats come back in ascending seat number;
// identical queries over unchanged data are byte-for-byte identical.
func (h *BrowseHandler) Availability(c echo.Context) error {
    roomID, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
    }
    start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC3339"})
    }
    end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC3339"})
    }
    ctx := c.Request().Context()
    key := h.Cache.AvailabilityKey(roomID, start, end)
    var cached []reservation.SeatAvailability
    if h.Cache.GetJSON(ctx, key, &cached) {
        return c.JSON(http.StatusOK, echo.Map{"items": cached})
    }
    items, err := h.Svc.ComputeAvailability(ctx, roomID, start, end)
    if err != nil {
        return writeError(c, err)
    }
    h.Cache.SetJSON(ctx, key, items, h.Cache.AvailabilityTTL())
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// roomLookupError converts a catalog sentinel into the typed error the
// shared writer understands.
func roomLookupError(err error) error {
    if errors.Is(err, reservation.ErrRoomNotFound) {
        return &reservation.Error{Kind: reservation.KindNotFound, Message: "room not found"}
    }
    return err
}
