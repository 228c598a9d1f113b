package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// PublicHandler exposes the unauthenticated browse endpoints: listing
// events and fetching a single event.  Availability is computed fresh on
// every request, so a booking made a moment ago is reflected
// immediately; these responses are never cached.
type PublicHandler struct {
	Events *repository.EventRepo
}

func NewPublicHandler(events *repository.EventRepo) *PublicHandler {
	if events == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Events: events}
}

// ListEvents handles GET /v1/events.  It returns every event annotated
// with its remaining ticket count.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetEvent handles GET /v1/events/:id.  It returns one event with its
// availability or 404 when the id does not resolve.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load event"})
	}
	return c.JSON(http.StatusOK, echo.Map{"event": ev})
}
