package repository

import (
	"context"
	"math/rand"
	"time"

	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/models"
)

// MockLatency is the simulated network delay per endpoint.
type MockLatency struct {
	Temperatures time.Duration
	Inventory    time.Duration
	Locations    time.Duration
}

// DefaultMockLatency mirrors a slow sensor gateway.
var DefaultMockLatency = MockLatency{
	Temperatures: 500 * time.Millisecond,
	Inventory:    400 * time.Millisecond,
	Locations:    300 * time.Millisecond,
}

// Scale multiplies every delay by factor.
func (l MockLatency) Scale(factor float64) MockLatency {
	scale := func(d time.Duration) time.Duration { return time.Duration(float64(d) * factor) }
	return MockLatency{
		Temperatures: scale(l.Temperatures),
		Inventory:    scale(l.Inventory),
		Locations:    scale(l.Locations),
	}
}

var mockRooms = []models.TemperatureReading{
	{RoomID: "COLD-01", Temperature: -18.5},
	{RoomID: "COLD-02", Temperature: -15.2},
	{RoomID: "COLD-03", Temperature: -19.1},
}

// Catalogue entries expire a fixed number of days after "today", so the
// near-expiry highlighting always has something to show.
var mockInventory = []struct {
	item      models.InventoryItem
	expiresIn int
}{
	{models.InventoryItem{SKU: "ICE-001", Name: "Ice Cream Vanilla", Batch: "B-202510", Qty: 50, Location: "RACK-A1"}, 43},
	{models.InventoryItem{SKU: "MEAT-002", Name: "Beef Slice Premium", Batch: "B-202509", Qty: 20, Location: "RACK-B2"}, 14},
	{models.InventoryItem{SKU: "FISH-003", Name: "Salmon Fillet", Batch: "B-202511", Qty: 35, Location: "RACK-A2"}, 27},
	{models.InventoryItem{SKU: "VEG-004", Name: "Frozen Broccoli", Batch: "B-202512", Qty: 100, Location: "RACK-C1"}, 152},
}

var mockLocations = []models.Location{
	{ID: "RACK-A1", Label: "Rack A1"},
	{ID: "RACK-A2", Label: "Rack A2"},
	{ID: "RACK-B1", Label: "Rack B1"},
	{ID: "RACK-B2", Label: "Rack B2"},
	{ID: "RACK-C1", Label: "Rack C1"},
	{ID: "RACK-C2", Label: "Rack C2"},
}

// MockSource serves fixed data after an artificial delay.
type MockSource struct {
	Latency  MockLatency
	Calendar expiry.Calendar
	// Jitter returns a value in [0, 1); readings vary by ±1 °C around their base.
	Jitter func() float64
}

// NewMockSource returns a mock with the default latency scaled by latencyScale.
func NewMockSource(latencyScale float64) *MockSource {
	return &MockSource{
		Latency: DefaultMockLatency.Scale(latencyScale),
		Jitter:  rand.Float64,
	}
}

var _ DataSource = (*MockSource)(nil)

func (m *MockSource) FetchTemperatures(ctx context.Context) ([]models.TemperatureReading, error) {
	if err := sleep(ctx, m.Latency.Temperatures); err != nil {
		return nil, err
	}

	jitter := m.Jitter
	if jitter == nil {
		jitter = rand.Float64
	}
	now := time.Now()
	readings := make([]models.TemperatureReading, len(mockRooms))
	for i, room := range mockRooms {
		readings[i] = models.TemperatureReading{
			RoomID:      room.RoomID,
			Temperature: room.Temperature + (jitter()-0.5)*2,
			Time:        now,
		}
	}
	return readings, nil
}

func (m *MockSource) FetchInventory(ctx context.Context) ([]models.InventoryItem, error) {
	if err := sleep(ctx, m.Latency.Inventory); err != nil {
		return nil, err
	}

	today := m.Calendar.Today()
	items := make([]models.InventoryItem, len(mockInventory))
	for i, entry := range mockInventory {
		item := entry.item
		item.Expiry = today.AddDate(0, 0, entry.expiresIn).Format(expiry.DateLayout)
		items[i] = item
	}
	return items, nil
}

func (m *MockSource) FetchLocations(ctx context.Context) ([]models.Location, error) {
	if err := sleep(ctx, m.Latency.Locations); err != nil {
		return nil, err
	}
	return append([]models.Location(nil), mockLocations...), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
