package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-shop-api/internal/domain/users"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.Account
	byEmail map[string]string // email -> id, índice de unicidad
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.Account),
		byEmail: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, a users.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	if _, exists := r.byEmail[a.Email]; exists {
		return users.ErrEmailTaken
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("account already exists")
	}

	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return users.Account{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return users.Account{}, users.ErrNotFound
	}
	return a, nil
}
