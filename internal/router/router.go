package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/studyhub/seat-reservation/internal/handler"
    "github.com/studyhub/seat-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterBrowse registers the unauthenticated browse endpoints: room
// list, room detail and per-window seat availability.  These routes
// apply no JWT middleware so guests can inspect rooms before signing
// in to reserve.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler) {
    e.GET("/v1/rooms", b.ListRooms)
    e.GET("/v1/rooms/:id", b.GetRoom)
    e.GET("/v1/rooms/:id/availability", b.Availability)
}

// RegisterReservations registers the authenticated reservation and
// check-in endpoints under /v1.  Every route in the group requires a
// valid bearer token carrying the MEMBER or ADMIN role.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, ci *handler.CheckInHandler, jwtSecret string) {
    g := e.Group("/v1")
    g.Use(middleware.JWTAuth(jwtSecret))
    g.Use(middleware.RequireRole("MEMBER", "ADMIN"))

    g.POST("/reservations", r.Create)
    g.GET("/my-reservations", r.ListMine)
    g.DELETE("/reservations/:id", r.Cancel)
    g.POST("/reservations/:id/checkin", ci.CheckIn)
    g.PATCH("/checkins/:id/checkout", ci.CheckOut)
}
