package model

import "time"

// EventStatusActive is the default status assigned at creation.  Other
// status strings (e.g. "cancelled") are accepted on update and only
// affect listing filters and stats, never the capacity check.
const EventStatusActive = "active"

// DefaultEventImage is used when no image reference is supplied at
// creation time.
const DefaultEventImage = "https://via.placeholder.com/400x300?text=Event"

// Event represents a bookable event owned by an organizer.  Capacity is
// the maximum ticket quantity that may ever be booked concurrently; the
// remaining availability is always derived from the live booking set and
// never stored on the event itself.
//
// Fields:
//  ID            – random UUID identifier.
//  OrganizerID   – owning organizer (foreign key into organizers).
//  Title         – event title.
//  Description   – free-form description.
//  Date          – event date as entered by the organizer (e.g. "2026-09-12").
//  Time          – event start time as entered (e.g. "19:30").
//  Location      – venue description.
//  Capacity      – positive maximum ticket count.
//  PriceCents    – per-ticket price in integer cents.
//  Image         – image URL, defaulted when absent.
//  Status        – "active" by default.
//  TicketsIssued – monotonic count of ticket numbers ever issued for this
//                  event.  It never decreases, even when bookings are
//                  cancelled, so ticket numbers stay unique over the
//                  event's whole booking history.
//  CreatedAt     – creation timestamp (UTC).
type Event struct {
    ID            string    `json:"id"`
    OrganizerID   string    `json:"organizer_id"`
    Title         string    `json:"title"`
    Description   string    `json:"description"`
    Date          string    `json:"date"`
    Time          string    `json:"time"`
    Location      string    `json:"location"`
    Capacity      int       `json:"capacity"`
    PriceCents    int64     `json:"price_cents"`
    Image         string    `json:"image"`
    Status        string    `json:"status"`
    TicketsIssued int       `json:"-"`
    CreatedAt     time.Time `json:"created_at"`
}
