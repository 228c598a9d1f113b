package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/event-ticketing/internal/utils"
)

func TestRegistrationEmailNamespaces(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	uid, err := r.users.Create(ctx, "Shared@Example.com", "pw", "Person", bcrypt.MinCost)
	require.NoError(t, err)

	// same email again in the users namespace fails, case-insensitively
	_, err = r.users.Create(ctx, "shared@example.com", "pw2", "Clone", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)

	// but the organizers namespace is independent
	oid, err := r.organizers.Create(ctx, "shared@example.com", "pw", "Shared Co", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, uid, oid)

	// and a second organizer with that email fails
	_, err = r.organizers.Create(ctx, "SHARED@example.com", "pw", "Other Co", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserLookupAndPasswordHash(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	uid, err := r.users.Create(ctx, "alice@example.com", "s3cret", "Alice", bcrypt.MinCost)
	require.NoError(t, err)

	u, err := r.users.GetByEmail(ctx, "  ALICE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, uid, u.ID)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "s3cret"))
	assert.False(t, utils.VerifyPassword(u.PasswordHash, "wrong"))

	_, err = r.users.GetByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.users.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	tokens := NewTokenRepo(r.store)

	exp := time.Now().UTC().Add(time.Hour)
	require.NoError(t, tokens.StoreRefresh(ctx, "subject-1", "USER", "hash-1", exp))
	require.NoError(t, tokens.StoreRefresh(ctx, "subject-1", "USER", "hash-2", exp))

	sub, role, err := tokens.ValidateRefresh(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "subject-1", sub)
	assert.Equal(t, "USER", role)

	// unknown or revoked hashes are invalid
	_, _, err = tokens.ValidateRefresh(ctx, "nope")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	require.NoError(t, tokens.RevokeByHash(ctx, "hash-1"))
	_, _, err = tokens.ValidateRefresh(ctx, "hash-1")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// revoke-all kills the remaining session
	require.NoError(t, tokens.RevokeAllForSubject(ctx, "subject-1"))
	_, _, err = tokens.ValidateRefresh(ctx, "hash-2")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenExpiry(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	tokens := NewTokenRepo(r.store)

	require.NoError(t, tokens.StoreRefresh(ctx, "subject-1", "USER", "stale", time.Now().UTC().Add(-time.Minute)))
	_, _, err := tokens.ValidateRefresh(ctx, "stale")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
