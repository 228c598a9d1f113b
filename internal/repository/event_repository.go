package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRepo provides event management for organizers and availability
// queries for everyone.  Ownership checks live here so every caller gets
// the same ErrForbidden behavior.
type EventRepo struct{ store *Store }

func NewEventRepo(s *Store) *EventRepo { return &EventRepo{store: s} }

// EventWithAvailability decorates an event with the remaining ticket
// count derived from the live booking set.  TicketsAvailable is computed
// fresh on every read and can in principle go negative if capacity was
// lowered below the booked quantity; callers must treat any non-positive
// value as sold out.
type EventWithAvailability struct {
	model.Event
	TicketsAvailable int `json:"tickets_available"`
}

// EventCreate carries the fields for a new event.  Required-field
// validation happens at the handler; the repository only resolves the
// organizer and applies defaults.
type EventCreate struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Capacity    int
	PriceCents  int64
	Image       string
}

// EventUpdate carries a partial overwrite for an event.  Nil fields are
// left unchanged; non-nil fields replace the stored value, including
// explicit zero values such as a price of 0 cents.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Location    *string
	Capacity    *int
	PriceCents  *int64
	Image       *string
	Status      *string
}

// Create inserts a new event owned by the given organizer.  It returns
// ErrOrganizerNotFound when the organizer id does not resolve.  Image
// and status receive defaults when absent.
func (r *EventRepo) Create(ctx context.Context, organizerID string, in EventCreate) (model.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.organizers[organizerID]; !ok {
		return model.Event{}, ErrOrganizerNotFound
	}
	ev := model.Event{
		ID:          uuid.NewString(),
		OrganizerID: organizerID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Location:    in.Location,
		Capacity:    in.Capacity,
		PriceCents:  in.PriceCents,
		Image:       in.Image,
		Status:      model.EventStatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if ev.Image == "" {
		ev.Image = model.DefaultEventImage
	}
	r.store.events[ev.ID] = ev
	return ev, nil
}

// GetByID returns a single event with its computed availability.
func (r *EventRepo) GetByID(ctx context.Context, id string) (EventWithAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ev, ok := r.store.events[id]
	if !ok {
		return EventWithAvailability{}, ErrEventNotFound
	}
	return EventWithAvailability{
		Event:            ev,
		TicketsAvailable: ev.Capacity - r.store.bookedQuantity(ev.ID),
	}, nil
}

// ListAll returns every event annotated with availability, newest first.
func (r *EventRepo) ListAll(ctx context.Context) ([]EventWithAvailability, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]EventWithAvailability, 0, len(r.store.events))
	for _, ev := range r.store.events {
		out = append(out, EventWithAvailability{
			Event:            ev,
			TicketsAvailable: ev.Capacity - r.store.bookedQuantity(ev.ID),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListByOrganizer returns all events owned by the organizer, unfiltered
// by status, newest first.
func (r *EventRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]model.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]model.Event, 0)
	for _, ev := range r.store.events {
		if ev.OrganizerID == organizerID {
			out = append(out, ev)
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

// Update applies a partial overwrite to an event after verifying that
// the caller owns it.  Returns ErrEventNotFound or ErrForbidden.
// Lowering capacity below the already-booked quantity is permitted; the
// availability simply reports the negative difference and further
// bookings keep failing the capacity check.
func (r *EventRepo) Update(ctx context.Context, eventID, organizerID string, in EventUpdate) (model.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ev, ok := r.store.events[eventID]
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	if ev.OrganizerID != organizerID {
		return model.Event{}, ErrForbidden
	}
	if in.Title != nil {
		ev.Title = *in.Title
	}
	if in.Description != nil {
		ev.Description = *in.Description
	}
	if in.Date != nil {
		ev.Date = *in.Date
	}
	if in.Time != nil {
		ev.Time = *in.Time
	}
	if in.Location != nil {
		ev.Location = *in.Location
	}
	if in.Capacity != nil {
		ev.Capacity = *in.Capacity
	}
	if in.PriceCents != nil {
		ev.PriceCents = *in.PriceCents
	}
	if in.Image != nil {
		ev.Image = *in.Image
	}
	if in.Status != nil {
		ev.Status = *in.Status
	}
	r.store.events[eventID] = ev
	return ev, nil
}

// Delete removes an event after verifying ownership.  Existing bookings
// are left in place with a dangling event id; availability for the
// deleted event simply stops being served, and booking detail endpoints
// report a missing event instead of failing.
func (r *EventRepo) Delete(ctx context.Context, eventID, organizerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	ev, ok := r.store.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if ev.OrganizerID != organizerID {
		return ErrForbidden
	}
	delete(r.store.events, eventID)
	return nil
}

// OrganizerStats summarises an organizer's dashboard counters.  Revenue
// and tickets sold are folded over exactly the bookings whose event
// belongs to the organizer; other organizers' bookings never contribute.
type OrganizerStats struct {
	TotalEvents       int   `json:"total_events"`
	TotalTicketsSold  int   `json:"total_tickets_sold"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
	ActiveEvents      int   `json:"active_events"`
}

// Stats computes the dashboard counters for one organizer.  Pure
// read-only fold with no side effects.
func (r *EventRepo) Stats(ctx context.Context, organizerID string) (OrganizerStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var st OrganizerStats
	owned := make(map[string]bool)
	for _, ev := range r.store.events {
		if ev.OrganizerID != organizerID {
			continue
		}
		st.TotalEvents++
		if ev.Status == model.EventStatusActive {
			st.ActiveEvents++
		}
		owned[ev.ID] = true
	}
	for _, b := range r.store.bookings {
		if owned[b.EventID] {
			st.TotalTicketsSold += b.Quantity
			st.TotalRevenueCents += b.TotalPriceCents
		}
	}
	return st, nil
}
