package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// OrganizerRepo provides registration and lookup for organizer accounts.
// Organizers form an email namespace independent from users.
type OrganizerRepo struct{ store *Store }

func NewOrganizerRepo(s *Store) *OrganizerRepo { return &OrganizerRepo{store: s} }

// Create registers a new organizer and returns its ID.
func (r *OrganizerRepo) Create(ctx context.Context, email, password, companyName string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, o := range r.store.organizers {
		if o.Email == email {
			return "", ErrEmailExists
		}
	}
	o := model.Organizer{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CompanyName:  companyName,
		CreatedAt:    time.Now().UTC(),
	}
	r.store.organizers[o.ID] = o
	return o.ID, nil
}

// GetByEmail fetches an organizer by normalized email.
func (r *OrganizerRepo) GetByEmail(ctx context.Context, email string) (model.Organizer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, o := range r.store.organizers {
		if o.Email == email {
			return o, nil
		}
	}
	return model.Organizer{}, ErrOrganizerNotFound
}

// GetByID fetches an organizer by id.
func (r *OrganizerRepo) GetByID(ctx context.Context, id string) (model.Organizer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.organizers[id]
	if !ok {
		return model.Organizer{}, ErrOrganizerNotFound
	}
	return o, nil
}
