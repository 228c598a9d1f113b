package model

import "time"

// BookingStatusConfirmed is the only status a stored booking can have;
// cancellation removes the record entirely rather than flagging it.
const BookingStatusConfirmed = "confirmed"

// Booking records a confirmed ticket purchase.  TotalPriceCents is fixed
// at booking time (quantity × the event price at that moment) and is not
// recomputed when the event price later changes.
//
// Fields:
//  ID              – random UUID identifier.
//  UserID          – purchasing user.
//  EventID         – booked event.  May dangle after the event is
//                    deleted; the booking survives as an orphan.
//  Quantity        – positive number of tickets in this booking.
//  TotalPriceCents – quantity × event price in cents at booking time.
//  TicketNumbers   – one opaque ticket number per ticket, unique within
//                    the event's booking history.
//  Status          – always "confirmed" while the record exists.
//  CreatedAt       – booking timestamp (UTC).
type Booking struct {
    ID              string    `json:"id"`
    UserID          string    `json:"user_id"`
    EventID         string    `json:"event_id"`
    Quantity        int       `json:"quantity"`
    TotalPriceCents int64     `json:"total_price_cents"`
    TicketNumbers   []string  `json:"ticket_numbers"`
    Status          string    `json:"status"`
    CreatedAt       time.Time `json:"created_at"`
}
