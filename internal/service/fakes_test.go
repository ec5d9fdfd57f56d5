package service

import (
	"context"
	"sync"
	"time"

	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/models"
)

var testCalendar = expiry.Calendar{
	Now:      func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) },
	Location: time.UTC,
}

type fakeSource struct {
	mu           sync.Mutex
	readings     []models.TemperatureReading
	inventory    []models.InventoryItem
	locations    []models.Location
	err          error
	locationsErr error
	// block, when set, holds FetchTemperatures until it is closed.
	block chan struct{}
}

func (f *fakeSource) FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error) {
	f.mu.Lock()
	block, readings, err := f.block, f.readings, f.err
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return append([]models.TemperatureReading(nil), readings...), nil
}

func (f *fakeSource) FetchInventory(_ context.Context) ([]models.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.InventoryItem(nil), f.inventory...), nil
}

func (f *fakeSource) FetchLocations(_ context.Context) ([]models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locationsErr != nil {
		return nil, f.locationsErr
	}
	return append([]models.Location(nil), f.locations...), nil
}

func (f *fakeSource) set(fn func(f *fakeSource)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

var testLocations = []models.Location{
	{ID: "RACK-A1", Label: "Rack A1 (Cold Room 1)"},
	{ID: "RACK-B1", Label: "Rack B1 (Cold Room 2)"},
}

func item(sku, batch, expiry string, qty int, location string) models.InventoryItem {
	return models.InventoryItem{
		SKU:      sku,
		Name:     sku + " name",
		Batch:    batch,
		Expiry:   expiry,
		Qty:      qty,
		Location: location,
	}
}
