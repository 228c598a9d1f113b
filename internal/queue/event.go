// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketsBookedEvent is published when a booking is successfully
// recorded.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the store.
type TicketsBookedEvent struct {
    BookingID       string   `json:"booking_id"`
    UserID          string   `json:"user_id"`
    EventID         string   `json:"event_id"`
    EventTitle      string   `json:"event_title"`
    EventDate       string   `json:"event_date"`
    Quantity        int      `json:"quantity"`
    TotalPriceCents int64    `json:"total_price_cents"`
    TicketNumbers   []string `json:"ticket_numbers"`
    BookedAt        string   `json:"booked_at"`
}
