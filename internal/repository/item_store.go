// Package repository holds the data sources and the persistent item store.
package repository

import (
	"context"
	"sync"

	"ColdStore.wms/internal/models"
)

// DefaultStoreKey is the storage name the item list is kept under.
const DefaultStoreKey = "wms-inventory-storage"

// ItemStore holds the session's authoritative inventory list.
type ItemStore interface {
	All(ctx context.Context) ([]models.InventoryItem, error)
	Replace(ctx context.Context, items []models.InventoryItem) error
	Append(ctx context.Context, item models.InventoryItem) error
	Clear(ctx context.Context) error
}

// MemoryItemStore keeps items in process memory. It does not survive a restart.
type MemoryItemStore struct {
	mu    sync.RWMutex
	items []models.InventoryItem
}

// NewMemoryItemStore returns an empty store.
func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{items: []models.InventoryItem{}}
}

var _ ItemStore = (*MemoryItemStore)(nil)

func (s *MemoryItemStore) All(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.InventoryItem(nil), s.items...), nil
}

func (s *MemoryItemStore) Replace(_ context.Context, items []models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.InventoryItem{}, items...)
	return nil
}

func (s *MemoryItemStore) Append(_ context.Context, item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

func (s *MemoryItemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []models.InventoryItem{}
	return nil
}
