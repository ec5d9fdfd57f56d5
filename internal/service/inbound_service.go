package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/inventory"
	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"

	"go.uber.org/zap"
)

// ErrDuplicateItem is returned when the composite key is already stored.
var ErrDuplicateItem = errors.New("an item with the same SKU, batch and location already exists")

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields models.FormErrors
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// InboundService adds new stock to the item store.
type InboundService struct {
	source   repository.DataSource
	store    repository.ItemStore
	calendar expiry.Calendar
	logger   *zap.Logger

	mu sync.Mutex
}

// NewInboundService creates a new InboundService.
func NewInboundService(source repository.DataSource, store repository.ItemStore, calendar expiry.Calendar, logger *zap.Logger) *InboundService {
	return &InboundService{
		source:   source,
		store:    store,
		calendar: calendar,
		logger:   logger,
	}
}

// Submit validates form and appends it to the store. Nothing is stored when
// validation fails or the composite key already exists.
func (s *InboundService) Submit(ctx context.Context, form models.InboundForm) (models.InventoryItem, error) {
	validator := inventory.Validator{Calendar: s.calendar}
	if locations, err := s.source.FetchLocations(ctx); err != nil {
		s.logger.Warn("Location catalogue unavailable, skipping location check", zap.Error(err))
	} else {
		validator.Locations = locations
	}

	if errs := validator.Validate(form); len(errs) > 0 {
		return models.InventoryItem{}, &ValidationError{Fields: errs}
	}

	item := form.Item()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.store.All(ctx)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("failed to read stored inventory: %w", err)
	}
	if inventory.Contains(stored, item.Key()) {
		return models.InventoryItem{}, ErrDuplicateItem
	}

	if err := s.store.Append(ctx, item); err != nil {
		return models.InventoryItem{}, fmt.Errorf("failed to store item: %w", err)
	}

	s.logger.Info("Inbound item added",
		zap.String("sku", item.SKU),
		zap.String("batch", item.Batch),
		zap.String("location", item.Location),
		zap.Int("qty", item.Qty),
	)
	return item, nil
}

// Clear empties the item store.
func (s *InboundService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}
	s.logger.Info("Inventory cleared")
	return nil
}
