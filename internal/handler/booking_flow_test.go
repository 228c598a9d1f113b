package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
)

// newTestServer wires a full application against a fresh store.  Queue
// publishing is disabled so tests never touch a broker.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		Env:            "test",
		Port:           "0",
		JWTSecret:      "test-secret",
		AccessTTLMin:   5,
		RefreshTTLDays: 1,
		BcryptCost:     bcrypt.MinCost,
	}
	store := repository.NewStore()
	users := repository.NewUserRepo(store)
	organizers := repository.NewOrganizerRepo(store)
	events := repository.NewEventRepo(store)
	bookings := repository.NewBookingRepo(store)
	tokens := repository.NewTokenRepo(store)

	customer := handler.NewCustomerHandler(bookings, events)
	customer.PublishEvents = false

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, organizers, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(events))
	router.RegisterOrganizer(e, handler.NewOrganizerHandler(events), cfg.JWTSecret)
	router.RegisterCustomer(e, customer, cfg.JWTSecret)
	return e
}

// do performs a request and decodes the JSON response body into out
// when out is non-nil.
func do(t *testing.T, e *echo.Echo, method, path, token, body string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), "body: %s", rec.Body.String())
	}
	return rec
}

type authBody struct {
	User struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
	Refresh struct {
		Token string `json:"token"`
	} `json:"refresh"`
}

func registerOrganizer(t *testing.T, e *echo.Echo, email string) authBody {
	t.Helper()
	var resp authBody
	rec := do(t, e, http.MethodPost, "/v1/auth/organizer/register", "",
		fmt.Sprintf(`{"email":%q,"password":"pw","company_name":"Acme Events"}`, email), &resp)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp
}

func registerUser(t *testing.T, e *echo.Echo, email string) authBody {
	t.Helper()
	var resp authBody
	rec := do(t, e, http.MethodPost, "/v1/auth/register", "",
		fmt.Sprintf(`{"email":%q,"password":"pw","name":"Fan"}`, email), &resp)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp
}

type eventBody struct {
	Event struct {
		ID               string `json:"id"`
		Capacity         int    `json:"capacity"`
		PriceCents       int64  `json:"price_cents"`
		Status           string `json:"status"`
		TicketsAvailable int    `json:"tickets_available"`
	} `json:"event"`
}

type bookingBody struct {
	Booking struct {
		ID              string   `json:"id"`
		Quantity        int      `json:"quantity"`
		TotalPriceCents int64    `json:"total_price_cents"`
		TicketNumbers   []string `json:"ticket_numbers"`
		Event           *struct {
			ID string `json:"id"`
		} `json:"event"`
	} `json:"booking"`
}

func createEvent(t *testing.T, e *echo.Echo, token string, capacity int, priceCents int64) string {
	t.Helper()
	var resp eventBody
	rec := do(t, e, http.MethodPost, "/v1/events", token,
		fmt.Sprintf(`{"title":"Concert","description":"Live","date":"2026-09-12","time":"19:30","location":"Main Hall","capacity":%d,"price_cents":%d}`, capacity, priceCents), &resp)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return resp.Event.ID
}

func eventAvailability(t *testing.T, e *echo.Echo, eventID string) int {
	t.Helper()
	var resp eventBody
	rec := do(t, e, http.MethodGet, "/v1/events/"+eventID, "", "", &resp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return resp.Event.TicketsAvailable
}

func TestBookingLifecycle(t *testing.T) {
	e := newTestServer(t)
	org := registerOrganizer(t, e, "org@example.com")
	user := registerUser(t, e, "fan@example.com")

	evID := createEvent(t, e, org.Access.Token, 10, 2000)
	assert.Equal(t, 10, eventAvailability(t, e, evID))

	// book 3 tickets: availability drops, total is 3 × 2000 cents,
	// tickets are distinct
	var booked bookingBody
	rec := do(t, e, http.MethodPost, "/v1/bookings", user.Access.Token,
		fmt.Sprintf(`{"event_id":%q,"quantity":3}`, evID), &booked)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(6000), booked.Booking.TotalPriceCents)
	require.Len(t, booked.Booking.TicketNumbers, 3)
	seen := map[string]bool{}
	for _, n := range booked.Booking.TicketNumbers {
		assert.False(t, seen[n])
		seen[n] = true
	}
	assert.Equal(t, 7, eventAvailability(t, e, evID))

	// 8 > 7 remaining: rejected, availability unchanged
	rec = do(t, e, http.MethodPost, "/v1/bookings", user.Access.Token,
		fmt.Sprintf(`{"event_id":%q,"quantity":8}`, evID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 7, eventAvailability(t, e, evID))

	// cancelling returns the capacity
	rec = do(t, e, http.MethodDelete, "/v1/bookings/"+booked.Booking.ID, user.Access.Token, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 10, eventAvailability(t, e, evID))
}

func TestBookingValidation(t *testing.T) {
	e := newTestServer(t)
	org := registerOrganizer(t, e, "org@example.com")
	user := registerUser(t, e, "fan@example.com")
	evID := createEvent(t, e, org.Access.Token, 10, 2000)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing event id", body: `{"quantity":1}`, want: http.StatusBadRequest},
		{name: "missing quantity", body: fmt.Sprintf(`{"event_id":%q}`, evID), want: http.StatusBadRequest},
		{name: "zero quantity", body: fmt.Sprintf(`{"event_id":%q,"quantity":0}`, evID), want: http.StatusBadRequest},
		{name: "negative quantity", body: fmt.Sprintf(`{"event_id":%q,"quantity":-2}`, evID), want: http.StatusBadRequest},
		{name: "unknown event", body: `{"event_id":"missing","quantity":1}`, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/v1/bookings", user.Access.Token, tt.body, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRoleEnforcement(t *testing.T) {
	e := newTestServer(t)
	org := registerOrganizer(t, e, "org@example.com")
	user := registerUser(t, e, "fan@example.com")
	evID := createEvent(t, e, org.Access.Token, 10, 2000)

	// a customer cannot create events
	rec := do(t, e, http.MethodPost, "/v1/events", user.Access.Token,
		`{"title":"Nope","description":"d","date":"2026-01-01","time":"10:00","location":"L","capacity":5,"price_cents":100}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// an organizer cannot book tickets
	rec = do(t, e, http.MethodPost, "/v1/bookings", org.Access.Token,
		fmt.Sprintf(`{"event_id":%q,"quantity":1}`, evID), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// no token at all
	rec = do(t, e, http.MethodPost, "/v1/bookings", "",
		fmt.Sprintf(`{"event_id":%q,"quantity":1}`, evID), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegistrationAndLogin(t *testing.T) {
	e := newTestServer(t)
	registerUser(t, e, "shared@example.com")

	// duplicate email within the users namespace
	rec := do(t, e, http.MethodPost, "/v1/auth/register", "",
		`{"email":"shared@example.com","password":"pw","name":"Clone"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// the organizers namespace is independent
	registerOrganizer(t, e, "shared@example.com")

	// login against each namespace
	var resp authBody
	rec = do(t, e, http.MethodPost, "/v1/auth/login", "",
		`{"email":"shared@example.com","password":"pw","role":"user"}`, &resp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "USER", resp.User.Role)

	rec = do(t, e, http.MethodPost, "/v1/auth/login", "",
		`{"email":"shared@example.com","password":"pw","role":"organizer"}`, &resp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ORGANIZER", resp.User.Role)

	// wrong password
	rec = do(t, e, http.MethodPost, "/v1/auth/login", "",
		`{"email":"shared@example.com","password":"wrong","role":"user"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRotation(t *testing.T) {
	e := newTestServer(t)
	user := registerUser(t, e, "fan@example.com")

	var refreshed authBody
	rec := do(t, e, http.MethodPost, "/v1/auth/refresh", "",
		fmt.Sprintf(`{"refresh_token":%q}`, user.Refresh.Token), &refreshed)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, refreshed.Access.Token)
	assert.NotEqual(t, user.Refresh.Token, refreshed.Refresh.Token)

	// the old refresh token was rotated out
	rec = do(t, e, http.MethodPost, "/v1/auth/refresh", "",
		fmt.Sprintf(`{"refresh_token":%q}`, user.Refresh.Token), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEventUpdateAndOrphanedBooking(t *testing.T) {
	e := newTestServer(t)
	org := registerOrganizer(t, e, "org@example.com")
	other := registerOrganizer(t, e, "other@example.com")
	user := registerUser(t, e, "fan@example.com")
	evID := createEvent(t, e, org.Access.Token, 10, 2000)

	// a different organizer cannot touch the event
	rec := do(t, e, http.MethodPut, "/v1/events/"+evID, other.Access.Token, `{"title":"Hijacked"}`, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// the owner can set an explicit zero price
	var updated eventBody
	rec = do(t, e, http.MethodPut, "/v1/events/"+evID, org.Access.Token, `{"price_cents":0}`, &updated)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(0), updated.Event.PriceCents)

	// book, then delete the event: the booking remains, eventless
	var booked bookingBody
	rec = do(t, e, http.MethodPost, "/v1/bookings", user.Access.Token,
		fmt.Sprintf(`{"event_id":%q,"quantity":1}`, evID), &booked)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/v1/events/"+evID, org.Access.Token, "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var detail bookingBody
	rec = do(t, e, http.MethodGet, "/v1/bookings/"+booked.Booking.ID, user.Access.Token, "", &detail)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, detail.Booking.Event)
}
