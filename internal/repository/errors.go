// Package repository implements the service's domain logic over the
// in-process Store: account registration, event management, the
// capacity-checked booking flow and the stats fold.  Sentinel errors
// defined here let handlers map each failure scenario to an HTTP status
// without inspecting error strings.  All failures are client mistakes,
// not transient faults: every check precedes the operation's single
// mutation step, so a failed call never leaves a half-written record.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as updating another organizer's event
// or cancelling another user's booking.  Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when a registration reuses an email already
// taken within the same namespace (users and organizers are independent
// namespaces).  Handlers should translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrCapacityExceeded is returned when a booking would push the summed
// booked quantity past the event's capacity.  This is the sole
// invariant-enforcing check in the system.
var ErrCapacityExceeded = errors.New("not enough tickets available")

// Not-found sentinels, one per entity, so handlers can report which
// identifier failed to resolve.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrBookingNotFound   = errors.New("booking not found")
)

// ErrTokenInvalid is returned when a refresh token hash does not resolve
// to an active, unexpired token.
var ErrTokenInvalid = errors.New("invalid refresh token")
