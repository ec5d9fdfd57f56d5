package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ColdStore.wms/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPSource reads the dashboard data from an upstream JSON API exposing
// /temperatures, /inventory and /locations.
type HTTPSource struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPSource targets baseURL, e.g. "http://warehouse-gateway:8080/api".
func NewHTTPSource(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{client: client, logger: logger}
}

var _ DataSource = (*HTTPSource)(nil)

func (s *HTTPSource) FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error) {
	var readings []models.TemperatureReading
	if err := s.get(ctx, "/temperatures", &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (s *HTTPSource) FetchInventory(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.get(ctx, "/inventory", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *HTTPSource) FetchLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.get(ctx, "/locations", &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (s *HTTPSource) get(ctx context.Context, path string, out any) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		s.logger.Warn("Upstream request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: GET %s: %v", ErrUnavailable, path, err)
	}

	if resp.IsError() {
		s.logger.Warn("Upstream returned an error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return fmt.Errorf("%w: GET %s returned %s", ErrUnavailable, path, resp.Status())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: GET %s: invalid JSON: %v", ErrUnavailable, path, err)
	}
	return nil
}
