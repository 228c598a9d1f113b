package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// OrganizerHandler groups the event-management endpoints available to
// organizer accounts.  All methods assume JWT authentication and the
// ORGANIZER role check have already run; the organizer id is taken from
// the token, never from the request body.
type OrganizerHandler struct {
	Events *repository.EventRepo
}

func NewOrganizerHandler(events *repository.EventRepo) *OrganizerHandler {
	if events == nil {
		panic("nil repository passed to NewOrganizerHandler")
	}
	return &OrganizerHandler{Events: events}
}

// createEventReq carries the fields for a new event.  Capacity and price
// are pointers so a missing field can be told apart from an explicit
// zero.
type createEventReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Capacity    *int   `json:"capacity"`
	PriceCents  *int64 `json:"price_cents"`
	Image       string `json:"image"`
}

// updateEventReq is a partial overwrite: absent fields stay unchanged,
// present fields replace the stored value, zero values included.
type updateEventReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Capacity    *int    `json:"capacity"`
	PriceCents  *int64  `json:"price_cents"`
	Image       *string `json:"image"`
	Status      *string `json:"status"`
}

// CreateEvent handles POST /v1/events.  Every field except image is
// required; capacity must be positive and price non-negative.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	organizerID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.Description == "" || req.Date == "" || req.Time == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/description/date/time/location required"})
	}
	if req.Capacity == nil || *req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be a positive integer"})
	}
	if req.PriceCents == nil || *req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be a non-negative integer"})
	}

	ev, err := h.Events.Create(c.Request().Context(), organizerID, repository.EventCreate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Capacity:    *req.Capacity,
		PriceCents:  *req.PriceCents,
		Image:       strings.TrimSpace(req.Image),
	})
	if err != nil {
		if errors.Is(err, repository.ErrOrganizerNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"event": ev})
}

// UpdateEvent handles PUT /v1/events/:id.  Ownership is enforced by the
// repository; non-owners get 403 regardless of what they send.
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	organizerID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := c.Param("id")
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req updateEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be a positive integer"})
	}
	if req.PriceCents != nil && *req.PriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_cents must be a non-negative integer"})
	}

	ev, err := h.Events.Update(c.Request().Context(), eventID, organizerID, repository.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		Capacity:    req.Capacity,
		PriceCents:  req.PriceCents,
		Image:       req.Image,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update event failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event": ev})
}

// DeleteEvent handles DELETE /v1/events/:id.  Bookings referencing the
// event are deliberately left in place; see the booking endpoints for
// how orphans are reported.
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	organizerID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := c.Param("id")
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Events.Delete(c.Request().Context(), eventID, organizerID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete event failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMyEvents handles GET /v1/organizer/events.  It returns all of the
// organizer's events regardless of status.
func (h *OrganizerHandler) ListMyEvents(c echo.Context) error {
	organizerID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListByOrganizer(c.Request().Context(), organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// Stats handles GET /v1/organizer/stats, the dashboard counters.
func (h *OrganizerHandler) Stats(c echo.Context) error {
	organizerID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	st, err := h.Events.Stats(c.Request().Context(), organizerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load stats"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": st})
}
