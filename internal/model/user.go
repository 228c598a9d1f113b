package model

import "time"

// Role names carried in JWT claims and enforced by the role middleware.
// Users and organizers live in independent identity namespaces; the same
// email may register once in each.
const (
    RoleUser      = "USER"      // customer accounts that book tickets
    RoleOrganizer = "ORGANIZER" // accounts that create and manage events
)

// User represents a customer account.  Users register once, are never
// mutated afterwards and have no delete path.  The password is stored
// only as a bcrypt hash.
//
// Fields:
//  ID           – random UUID identifier.
//  Email        – unique within the users namespace, lower-cased.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name shown on bookings.
//  CreatedAt    – registration timestamp (UTC).
type User struct {
    ID           string    `json:"id"`
    Email        string    `json:"email"`
    PasswordHash string    `json:"-"`
    Name         string    `json:"name"`
    CreatedAt    time.Time `json:"created_at"`
}

// RefreshToken records a refresh token issued to a user or organizer.
// Only the SHA-256 hash of the token value is stored; the raw token is
// returned to the client once and never kept server-side.
//
// Fields:
//  SubjectID – owner of the token (user or organizer UUID).
//  Role      – role of the owner, needed to mint new access tokens.
//  TokenHash – SHA-256 hex digest of the raw token.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    SubjectID string
    Role      string
    TokenHash string
    ExpiresAt time.Time
    RevokedAt *time.Time
    CreatedAt time.Time
}
