package model

import "time"

// Organizer represents an account that owns and manages events.  It has
// the same lifecycle as User (created by registration, never mutated,
// never deleted) but lives in its own email namespace.
type Organizer struct {
    ID           string    `json:"id"`
    Email        string    `json:"email"`
    PasswordHash string    `json:"-"`
    CompanyName  string    `json:"company_name"`
    CreatedAt    time.Time `json:"created_at"`
}
