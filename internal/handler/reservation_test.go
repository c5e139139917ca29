package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
)

// postJSON builds an authenticated POST context for the given body.
func postJSON(userID any, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/reservations", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if userID != nil {
        c.Set("user_id", userID)
    }
    return c, rec
}

// The rejection paths below never reach the service, so a zero-value
// handler is enough.
func TestCreateRejectsBadRequests(t *testing.T) {
    h := &ReservationHandler{}

    cases := []struct {
        name   string
        userID any
        body   string
        status int
    }{
        {"missing identity", nil, `{"room_id":1,"seat_id":2,"start_time":"2025-03-10T10:00:00Z","end_time":"2025-03-10T11:00:00Z"}`, http.StatusUnauthorized},
        {"malformed json", uint64(7), `{"room_id":`, http.StatusBadRequest},
        {"missing ids", uint64(7), `{"start_time":"2025-03-10T10:00:00Z","end_time":"2025-03-10T11:00:00Z"}`, http.StatusBadRequest},
        {"bad start_time", uint64(7), `{"room_id":1,"seat_id":2,"start_time":"10am","end_time":"2025-03-10T11:00:00Z"}`, http.StatusBadRequest},
        {"bad end_time", uint64(7), `{"room_id":1,"seat_id":2,"start_time":"2025-03-10T10:00:00Z","end_time":"11am"}`, http.StatusBadRequest},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := postJSON(tc.userID, tc.body)
            assert.NoError(t, h.Create(c))
            assert.Equal(t, tc.status, rec.Code)
        })
    }
}

func TestCancelRejectsBadPathID(t *testing.T) {
    h := &ReservationHandler{}
    e := echo.New()
    req := httptest.NewRequest(http.MethodDelete, "/v1/reservations/abc", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(7))
    c.SetParamNames("id")
    c.SetParamValues("abc")

    assert.NoError(t, h.Cancel(c))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
