package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	queue_publisher "github.com/iliyamo/event-ticketing/internal/service"
)

// CustomerHandler groups the booking endpoints available to customer
// accounts.  The user id always comes from the JWT, never from the
// request body.  The capacity check and booking insert run as a single
// critical section inside the repository, so the handler never needs to
// re-check availability after the fact.
type CustomerHandler struct {
	Bookings *repository.BookingRepo
	Events   *repository.EventRepo
	// PublishEvents toggles the fire-and-forget queue notification
	// after a successful booking.  Disabled in tests.
	PublishEvents bool
}

func NewCustomerHandler(bookings *repository.BookingRepo, events *repository.EventRepo) *CustomerHandler {
	if bookings == nil || events == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Bookings: bookings, Events: events, PublishEvents: true}
}

type bookReq struct {
	EventID  string `json:"event_id"`
	Quantity *int   `json:"quantity"`
}

// Book handles POST /v1/bookings.  It validates the request, performs
// the capacity-checked purchase and returns the booking with its ticket
// numbers.  On success a queue notification is published without
// blocking or failing the request.
func (h *CustomerHandler) Book(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.EventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	if req.Quantity == nil || *req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be a positive integer"})
	}

	b, err := h.Bookings.Book(c.Request().Context(), userID, req.EventID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrCapacityExceeded):
			return c.JSON(http.StatusConflict, echo.Map{"error": "not enough tickets available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	if h.PublishEvents {
		ev := queue.TicketsBookedEvent{
			BookingID:       b.ID,
			UserID:          b.UserID,
			EventID:         b.EventID,
			Quantity:        b.Quantity,
			TotalPriceCents: b.TotalPriceCents,
			TicketNumbers:   b.TicketNumbers,
			BookedAt:        b.CreatedAt.Format(time.RFC3339),
		}
		if detail, derr := h.Events.GetByID(c.Request().Context(), b.EventID); derr == nil {
			ev.EventTitle = detail.Title
			ev.EventDate = detail.Date
		}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = queue_publisher.PublishTicketsBooked(ctx, ev)
		}()
	}

	return c.JSON(http.StatusCreated, echo.Map{"booking": b})
}

// ListMyBookings handles GET /v1/my-bookings.  Each booking is paired
// with its event details; the event is null when it has been deleted
// since the booking was made.
func (h *CustomerHandler) ListMyBookings(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// GetBooking handles GET /v1/bookings/:id.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	if _, err := subjectID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")
	if bookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Bookings.GetByID(c.Request().Context(), bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": detail})
}

// CancelBooking handles DELETE /v1/bookings/:id.  The booking record is
// removed outright; availability recovers immediately because it is
// always recomputed from the live booking set.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	userID, err := subjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID := c.Param("id")
	if bookingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.Cancel(c.Request().Context(), bookingID, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel booking failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
