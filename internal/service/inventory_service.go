package service

import (
	"context"
	"fmt"

	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/inventory"
	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"

	"go.uber.org/zap"
)

// InventoryService reconciles the stored inventory with the data source and
// serves the inventory table.
type InventoryService struct {
	source         repository.DataSource
	store          repository.ItemStore
	calendar       expiry.Calendar
	nearExpiryDays int
	logger         *zap.Logger
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(source repository.DataSource, store repository.ItemStore, calendar expiry.Calendar, nearExpiryDays int, logger *zap.Logger) *InventoryService {
	if nearExpiryDays <= 0 {
		nearExpiryDays = expiry.DefaultNearExpiryDays
	}
	return &InventoryService{
		source:         source,
		store:          store,
		calendar:       calendar,
		nearExpiryDays: nearExpiryDays,
		logger:         logger,
	}
}

// Load pulls the catalogue from the data source. An empty store takes the
// fetched list as is; otherwise the stored items are kept and only new keys
// are added.
func (s *InventoryService) Load(ctx context.Context) error {
	fetched, err := s.source.FetchInventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	stored, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stored inventory: %w", err)
	}

	items := fetched
	if len(stored) > 0 {
		items = inventory.Merge(stored, fetched)
	}
	if err := s.store.Replace(ctx, items); err != nil {
		return fmt.Errorf("failed to store inventory: %w", err)
	}

	s.logger.Info("Inventory loaded",
		zap.Int("fetched_count", len(fetched)),
		zap.Int("stored_count", len(stored)),
		zap.Int("item_count", len(items)),
	)
	return nil
}

// List returns the items matching query, annotated for display.
func (s *InventoryService) List(ctx context.Context, query string) (models.InventoryListResponse, error) {
	items, err := s.store.All(ctx)
	if err != nil {
		return models.InventoryListResponse{}, fmt.Errorf("failed to read stored inventory: %w", err)
	}

	filtered := inventory.FilterBySearch(items, query)
	return models.InventoryListResponse{
		Items:   s.annotate(filtered),
		Total:   len(items),
		Showing: len(filtered),
		Query:   query,
	}, nil
}

// Locations returns the storage location catalogue.
func (s *InventoryService) Locations(ctx context.Context) ([]models.Location, error) {
	locations, err := s.source.FetchLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	return locations, nil
}

func (s *InventoryService) annotate(items []models.InventoryItem) []models.InventoryRow {
	rows := make([]models.InventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.InventoryRow{
			InventoryItem:   item,
			NearExpiry:      s.calendar.IsNearExpiryWithin(item.Expiry, s.nearExpiryDays),
			Expired:         s.calendar.IsPastDate(item.Expiry),
			DaysUntilExpiry: s.calendar.DaysUntilExpiry(item.Expiry),
		})
	}
	return rows
}
