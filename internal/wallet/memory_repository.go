package wallet

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Wallet
}

// NewMemoryRepository constructs an in-memory repository for tests and
// local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Wallet)}
}

func (r *memoryRepository) Create(_ context.Context, wallet Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[wallet.ID]; exists {
		return errors.New("wallet exists")
	}
	r.storage[wallet.ID] = wallet
	return nil
}

func (r *memoryRepository) FindByIDAndOwner(_ context.Context, id, ownerID string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wallet, ok := r.storage[id]
	if !ok || wallet.OwnerID != ownerID {
		return Wallet{}, ErrNotFound
	}
	return wallet, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, ownerID string) ([]Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var wallets []Wallet
	for _, w := range r.storage {
		if w.OwnerID == ownerID {
			wallets = append(wallets, w)
		}
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].CreatedAt.Before(wallets[j].CreatedAt)
	})
	return wallets, nil
}

func (r *memoryRepository) Remove(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet, ok := r.storage[id]
	if !ok || wallet.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.storage, id)
	return nil
}
