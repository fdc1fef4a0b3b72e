package user

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory user store for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.PhoneNumber]; exists {
		return errors.New("user exists")
	}
	r.users[user.PhoneNumber] = user
	return nil
}

func (r *memoryRepository) FindByPhone(_ context.Context, phoneNumber string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[phoneNumber]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
