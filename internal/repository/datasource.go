package repository

import (
	"context"
	"errors"

	"ColdStore.wms/internal/models"
)

// ErrUnavailable wraps every failure to reach an upstream data source.
var ErrUnavailable = errors.New("data source unavailable")

// TemperatureSource provides the current cold-room readings.
type TemperatureSource interface {
	FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error)
}

// DataSource is the read side the dashboard depends on. Each call returns the
// full list or an error; there is no pagination.
type DataSource interface {
	TemperatureSource
	FetchInventory(ctx context.Context) ([]models.InventoryItem, error)
	FetchLocations(ctx context.Context) ([]models.Location, error)
}

type withTemperatures struct {
	DataSource
	temperatures TemperatureSource
}

func (w withTemperatures) FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error) {
	return w.temperatures.FetchTemperatures(ctx)
}

// WithTemperatureSource serves readings from temps and everything else from base.
func WithTemperatureSource(base DataSource, temps TemperatureSource) DataSource {
	return withTemperatures{DataSource: base, temperatures: temps}
}
