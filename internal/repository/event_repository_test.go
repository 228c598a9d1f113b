package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func i64Ptr(n int64) *int64   { return &n }

func TestCreateEventDefaultsAndOwnership(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	oid, err := r.organizers.Create(ctx, "org@example.com", "pw", "Acme Events", bcrypt.MinCost)
	require.NoError(t, err)

	ev, err := r.events.Create(ctx, oid, EventCreate{
		Title:       "Expo",
		Description: "Annual expo",
		Date:        "2026-10-01",
		Time:        "09:00",
		Location:    "Hall B",
		Capacity:    100,
		PriceCents:  0,
	})
	require.NoError(t, err)
	assert.Equal(t, oid, ev.OrganizerID)
	assert.Equal(t, model.EventStatusActive, ev.Status)
	assert.Equal(t, model.DefaultEventImage, ev.Image)
	assert.NotEmpty(t, ev.ID)

	_, err = r.events.Create(ctx, "nope", EventCreate{Title: "x"})
	assert.ErrorIs(t, err, ErrOrganizerNotFound)
}

func TestUpdateEventPartialOverwrite(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, evID := r.seedUserAndEvent(t, 10, 2000)
	ev, err := r.events.GetByID(ctx, evID)
	require.NoError(t, err)
	oid := ev.OrganizerID

	tests := []struct {
		name  string
		in    EventUpdate
		check func(t *testing.T, got model.Event)
	}{
		{
			name: "single field",
			in:   EventUpdate{Title: strPtr("Renamed")},
			check: func(t *testing.T, got model.Event) {
				assert.Equal(t, "Renamed", got.Title)
				assert.Equal(t, "Main Hall", got.Location) // untouched
			},
		},
		{
			name: "explicit zero price",
			in:   EventUpdate{PriceCents: i64Ptr(0)},
			check: func(t *testing.T, got model.Event) {
				assert.Equal(t, int64(0), got.PriceCents)
			},
		},
		{
			name: "capacity and status",
			in:   EventUpdate{Capacity: intPtr(25), Status: strPtr("cancelled")},
			check: func(t *testing.T, got model.Event) {
				assert.Equal(t, 25, got.Capacity)
				assert.Equal(t, "cancelled", got.Status)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.events.Update(ctx, evID, oid, tt.in)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestUpdateEventOwnership(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, evID := r.seedUserAndEvent(t, 10, 2000)
	intruder, err := r.organizers.Create(ctx, "intruder@example.com", "pw", "Intruder Inc", bcrypt.MinCost)
	require.NoError(t, err)

	_, err = r.events.Update(ctx, evID, intruder, EventUpdate{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = r.events.Update(ctx, "nope", intruder, EventUpdate{})
	assert.ErrorIs(t, err, ErrEventNotFound)

	// the failed update must not have touched the event
	ev, err := r.events.GetByID(ctx, evID)
	require.NoError(t, err)
	assert.Equal(t, "Concert", ev.Title)
}

func TestDeleteEventPreservesBookings(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	uid, evID := r.seedUserAndEvent(t, 10, 2000)
	ev, err := r.events.GetByID(ctx, evID)
	require.NoError(t, err)
	oid := ev.OrganizerID

	b, err := r.bookings.Book(ctx, uid, evID, 2)
	require.NoError(t, err)

	intruder, err := r.organizers.Create(ctx, "someoneelse@example.com", "pw", "Else Co", bcrypt.MinCost)
	require.NoError(t, err)
	assert.ErrorIs(t, r.events.Delete(ctx, evID, intruder), ErrForbidden)

	require.NoError(t, r.events.Delete(ctx, evID, oid))

	// gone from listings
	all, err := r.events.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	mine, err := r.events.ListByOrganizer(ctx, oid)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// the booking survives as an orphan with a nil event
	detail, err := r.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Event)
	assert.Equal(t, evID, detail.EventID)
}

func TestListByOrganizerScoping(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	a, err := r.organizers.Create(ctx, "a@example.com", "pw", "A", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := r.organizers.Create(ctx, "b@example.com", "pw", "B", bcrypt.MinCost)
	require.NoError(t, err)

	for i, oid := range []string{a, a, b} {
		_, err := r.events.Create(ctx, oid, EventCreate{
			Title: "Event", Description: "d", Date: "2026-01-01", Time: "10:00",
			Location: "L", Capacity: 10 + i, PriceCents: 1000,
		})
		require.NoError(t, err)
	}

	mine, err := r.events.ListByOrganizer(ctx, a)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, ev := range mine {
		assert.Equal(t, a, ev.OrganizerID)
	}
}

func TestOrganizerStats(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	uid, err := r.users.Create(ctx, "fan@example.com", "pw", "Fan", bcrypt.MinCost)
	require.NoError(t, err)
	a, err := r.organizers.Create(ctx, "a@example.com", "pw", "A", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := r.organizers.Create(ctx, "b@example.com", "pw", "B", bcrypt.MinCost)
	require.NoError(t, err)

	mk := func(oid string, priceCents int64) string {
		ev, err := r.events.Create(ctx, oid, EventCreate{
			Title: "Show", Description: "d", Date: "2026-01-01", Time: "20:00",
			Location: "L", Capacity: 50, PriceCents: priceCents,
		})
		require.NoError(t, err)
		return ev.ID
	}
	evA1 := mk(a, 2000)
	evA2 := mk(a, 500)
	evB := mk(b, 10000)

	// one of A's events is no longer active
	_, err = r.events.Update(ctx, evA2, a, EventUpdate{Status: strPtr("cancelled")})
	require.NoError(t, err)

	_, err = r.bookings.Book(ctx, uid, evA1, 3) // 6000 cents
	require.NoError(t, err)
	_, err = r.bookings.Book(ctx, uid, evA2, 2) // 1000 cents
	require.NoError(t, err)
	_, err = r.bookings.Book(ctx, uid, evB, 1) // other organizer, excluded
	require.NoError(t, err)

	st, err := r.events.Stats(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, OrganizerStats{
		TotalEvents:       2,
		TotalTicketsSold:  5,
		TotalRevenueCents: 7000,
		ActiveEvents:      1,
	}, st)
}
