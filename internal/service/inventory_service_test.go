package service

import (
	"bytes"
	"context"
	"testing"

	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newInventoryService(source *fakeSource, store repository.ItemStore) *InventoryService {
	return NewInventoryService(source, store, testCalendar, 30, zap.NewNop())
}

func TestInventoryService_LoadIntoEmptyStore(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{inventory: []models.InventoryItem{
		item("ICE-001", "B1", "2026-12-01", 50, "RACK-A1"),
		item("FISH-01", "B2", "2026-11-02", 10, "RACK-B1"),
	}}
	store := repository.NewMemoryItemStore()

	require.NoError(t, newInventoryService(source, store).Load(ctx))

	items, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, source.inventory, items)
}

func TestInventoryService_LoadKeepsStoredItems(t *testing.T) {
	ctx := context.Background()
	stored := item("ICE-001", "B1", "2026-12-01", 7, "RACK-A1")
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{stored}))

	source := &fakeSource{inventory: []models.InventoryItem{
		item("ICE-001", "B1", "2026-12-01", 50, "RACK-A1"),
		item("FISH-01", "B2", "2026-11-02", 10, "RACK-B1"),
	}}

	require.NoError(t, newInventoryService(source, store).Load(ctx))

	items, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].Qty)
	assert.Equal(t, "FISH-01", items[1].SKU)
}

func TestInventoryService_LoadErrorLeavesStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{item("ICE-001", "B1", "2026-12-01", 7, "RACK-A1")}))

	err := newInventoryService(&fakeSource{err: repository.ErrUnavailable}, store).Load(ctx)

	require.ErrorIs(t, err, repository.ErrUnavailable)
	items, _ := store.All(ctx)
	assert.Len(t, items, 1)
}

func TestInventoryService_ListAnnotatesAndFilters(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{
		{SKU: "ICE-001", Name: "Ice Cream Vanilla", Batch: "B1", Expiry: "2026-12-01", Qty: 50, Location: "RACK-A1"},
		{SKU: "FISH-01", Name: "Frozen Salmon", Batch: "B2", Expiry: "2026-11-02", Qty: 10, Location: "RACK-B1"},
		{SKU: "MEAT-01", Name: "Beef Patty", Batch: "B3", Expiry: "2026-10-01", Qty: 5, Location: "RACK-B1"},
	}))
	svc := newInventoryService(&fakeSource{}, store)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, 3, all.Showing)
	require.Len(t, all.Items, 3)

	assert.False(t, all.Items[0].NearExpiry)
	assert.Equal(t, 43, all.Items[0].DaysUntilExpiry)
	assert.True(t, all.Items[1].NearExpiry)
	assert.Equal(t, 14, all.Items[1].DaysUntilExpiry)
	assert.True(t, all.Items[2].Expired)
	assert.False(t, all.Items[2].NearExpiry)
	assert.Equal(t, -18, all.Items[2].DaysUntilExpiry)

	filtered, err := svc.List(ctx, "F")
	require.NoError(t, err)
	assert.Equal(t, 3, filtered.Total)
	assert.Equal(t, 2, filtered.Showing)
	assert.Equal(t, "F", filtered.Query)
	assert.Equal(t, "FISH-01", filtered.Items[0].SKU)
	assert.Equal(t, "MEAT-01", filtered.Items[1].SKU)
}

func TestInventoryService_ListEmptyStore(t *testing.T) {
	list, err := newInventoryService(&fakeSource{}, repository.NewMemoryItemStore()).List(context.Background(), "ice")

	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)
}

func TestInventoryService_Locations(t *testing.T) {
	svc := newInventoryService(&fakeSource{locations: testLocations}, repository.NewMemoryItemStore())

	locations, err := svc.Locations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testLocations, locations)
}

func TestInventoryService_Export(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{
		{SKU: "ICE-001", Name: "Ice Cream Vanilla", Batch: "B1", Expiry: "2026-12-01", Qty: 50, Location: "RACK-A1"},
		{SKU: "FISH-01", Name: "Frozen Salmon", Batch: "B2", Expiry: "2026-11-02", Qty: 10, Location: "RACK-B1"},
		{SKU: "MEAT-01", Name: "Beef Patty", Batch: "B3", Expiry: "2026-10-01", Qty: 5, Location: "RACK-B1"},
	}))
	svc := newInventoryService(&fakeSource{}, store)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, &buf, ""))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Inventory"}, f.GetSheetList())
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeader, rows[0])
	assert.Equal(t, []string{"ICE-001", "Ice Cream Vanilla", "B1", "2026-12-01", "50", "RACK-A1", "Good"}, rows[1])
	assert.Equal(t, "14 days left", rows[2][6])
	assert.Equal(t, "Expired", rows[3][6])
}

func TestInventoryService_ExportFiltered(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{
		item("ICE-001", "B1", "2026-12-01", 50, "RACK-A1"),
		item("FISH-01", "B2", "2026-11-02", 10, "RACK-B1"),
	}))

	var buf bytes.Buffer
	require.NoError(t, newInventoryService(&fakeSource{}, store).Export(ctx, &buf, "fish"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "FISH-01", rows[1][0])
}
