package repository

import (
	"sync"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Store is the in-process database shared by all repositories.  It owns
// one map per entity type, each keyed by a random UUID, plus the refresh
// token registry keyed by token hash.  A single RWMutex guards every
// collection: the booking flow reads the event, sums booked quantities
// and inserts the new booking as one check-then-act sequence, and that
// sequence must not interleave with a concurrent booking against the
// same event.  Repositories never expose the maps; all access goes
// through repository methods that take the lock.
//
// The store keeps no durable state.  It is constructed once per process
// (or per test) and handed to the repositories by reference.
type Store struct {
	mu         sync.RWMutex
	users      map[string]model.User
	organizers map[string]model.Organizer
	events     map[string]model.Event
	bookings   map[string]model.Booking
	refresh    map[string]model.RefreshToken
}

// NewStore returns an empty Store ready for use.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]model.User),
		organizers: make(map[string]model.Organizer),
		events:     make(map[string]model.Event),
		bookings:   make(map[string]model.Booking),
		refresh:    make(map[string]model.RefreshToken),
	}
}

// bookedQuantity sums the quantities of all bookings referencing the
// event.  The caller must hold s.mu (read or write).
func (s *Store) bookedQuantity(eventID string) int {
	total := 0
	for _, b := range s.bookings {
		if b.EventID == eventID {
			total += b.Quantity
		}
	}
	return total
}
