package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// BookingRepo implements the booking flow.  Book runs the whole
// check-then-act sequence (resolve user and event, sum booked
// quantities, compare against capacity, allocate ticket numbers, insert)
// under the store's write lock, so two concurrent bookings can never
// both pass the capacity check before either is recorded.
type BookingRepo struct{ store *Store }

func NewBookingRepo(s *Store) *BookingRepo { return &BookingRepo{store: s} }

// BookingDetail pairs a booking with its event for display.  Event is
// nil when the event has been deleted since the booking was made.
type BookingDetail struct {
	model.Booking
	Event *model.Event `json:"event"`
}

// Book validates and records a ticket purchase.  Quantity must already
// be known positive (handlers reject missing or non-positive values
// before calling).  It returns ErrUserNotFound or ErrEventNotFound when
// an identifier does not resolve and ErrCapacityExceeded when the
// purchase would oversell the event.
//
// Ticket numbers are the event id's first 8 characters, upper-cased,
// joined with a 1-based sequence drawn from the event's monotonic issue
// counter.  The counter never decreases, so numbers stay unique across
// the event's booking history even after cancellations free capacity.
func (r *BookingRepo) Book(ctx context.Context, userID, eventID string, quantity int) (model.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.users[userID]; !ok {
		return model.Booking{}, ErrUserNotFound
	}
	ev, ok := r.store.events[eventID]
	if !ok {
		return model.Booking{}, ErrEventNotFound
	}
	booked := r.store.bookedQuantity(eventID)
	if booked+quantity > ev.Capacity {
		return model.Booking{}, ErrCapacityExceeded
	}
	prefix := strings.ToUpper(ticketPrefix(ev.ID))
	numbers := make([]string, 0, quantity)
	for i := 1; i <= quantity; i++ {
		numbers = append(numbers, fmt.Sprintf("%s-%d", prefix, ev.TicketsIssued+i))
	}
	ev.TicketsIssued += quantity
	r.store.events[eventID] = ev

	b := model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		EventID:         eventID,
		Quantity:        quantity,
		TotalPriceCents: int64(quantity) * ev.PriceCents,
		TicketNumbers:   numbers,
		Status:          model.BookingStatusConfirmed,
		CreatedAt:       time.Now().UTC(),
	}
	r.store.bookings[b.ID] = b
	return b, nil
}

// Cancel removes a booking after verifying that it belongs to the
// caller.  The record is deleted outright; capacity is implicitly freed
// because availability is always recomputed from the live booking set.
func (r *BookingRepo) Cancel(ctx context.Context, bookingID, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.bookings[bookingID]
	if !ok {
		return ErrBookingNotFound
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	delete(r.store.bookings, bookingID)
	return nil
}

// GetByID returns one booking with its event details.  Ownership is not
// checked here; the caller decides whether the requester may see it.
func (r *BookingRepo) GetByID(ctx context.Context, bookingID string) (BookingDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.bookings[bookingID]
	if !ok {
		return BookingDetail{}, ErrBookingNotFound
	}
	return r.detail(b), nil
}

// ListByUser returns all bookings made by the user, newest first, each
// paired with its event details when the event still exists.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]BookingDetail, 0)
	for _, b := range r.store.bookings {
		if b.UserID == userID {
			out = append(out, r.detail(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// detail attaches the event to a booking.  Caller must hold the lock.
func (r *BookingRepo) detail(b model.Booking) BookingDetail {
	d := BookingDetail{Booking: b}
	if ev, ok := r.store.events[b.EventID]; ok {
		d.Event = &ev
	}
	return d
}

// ticketPrefix derives the 8-character ticket prefix from an event id.
func ticketPrefix(eventID string) string {
	if len(eventID) < 8 {
		return eventID
	}
	return eventID[:8]
}
