package repository

import (
	"context"
	"time"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TokenRepo stores and validates refresh tokens, keyed by their SHA-256
// hash.  Tokens belong to either a user or an organizer; the role is
// recorded alongside so new access tokens can be minted on refresh
// without guessing which namespace the subject lives in.
type TokenRepo struct{ store *Store }

func NewTokenRepo(s *Store) *TokenRepo { return &TokenRepo{store: s} }

// StoreRefresh records a refresh token hash for a subject.
func (r *TokenRepo) StoreRefresh(ctx context.Context, subjectID, role, tokenHash string, exp time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.refresh[tokenHash] = model.RefreshToken{
		SubjectID: subjectID,
		Role:      role,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// ValidateRefresh returns the subject and role when a non-revoked,
// non-expired token exists for the hash, ErrTokenInvalid otherwise.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.refresh[tokenHash]
	if !ok {
		return "", "", ErrTokenInvalid
	}
	if t.RevokedAt != nil {
		return "", "", ErrTokenInvalid
	}
	if time.Now().UTC().After(t.ExpiresAt) {
		return "", "", ErrTokenInvalid
	}
	return t.SubjectID, t.Role, nil
}

// RevokeByHash marks a token as revoked.  Revoking an unknown hash is a
// no-op.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.refresh[tokenHash]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	t.RevokedAt = &now
	r.store.refresh[tokenHash] = t
	return nil
}

// RevokeAllForSubject revokes every active token belonging to a subject,
// logging them out of all sessions.
func (r *TokenRepo) RevokeAllForSubject(ctx context.Context, subjectID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now().UTC()
	for hash, t := range r.store.refresh {
		if t.SubjectID == subjectID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.store.refresh[hash] = t
		}
	}
	return nil
}
