package middleware

// identity.go provides the user identity helper shared across
// middleware files.  It resolves the identifier JWTAuth stored in the
// context so the rate limiter can key buckets per authenticated user;
// unauthenticated clients share the "anon" bucket for their IP.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user identifier from the
// context, or "anon" for unauthenticated requests.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case float64:
        return fmt.Sprintf("%.0f", v)
    case uint64:
        return fmt.Sprintf("%d", v)
    }
    return "anon"
}
