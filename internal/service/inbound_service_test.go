package service

import (
	"context"
	"errors"
	"testing"

	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInboundService(source *fakeSource, store repository.ItemStore) *InboundService {
	return NewInboundService(source, store, testCalendar, zap.NewNop())
}

func inboundForm() models.InboundForm {
	return models.InboundForm{
		SKU:        "ICE-005",
		Name:       "Ice Cream Chocolate",
		Batch:      "B-202610",
		ExpiryDate: "2026-12-01",
		Qty:        40,
		Location:   "RACK-A1",
	}
}

func TestInboundService_SubmitAppends(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{item("ICE-001", "B1", "2026-12-01", 50, "RACK-A1")}))
	svc := newInboundService(&fakeSource{locations: testLocations}, store)

	form := inboundForm()
	form.SKU = "  ICE-005 "
	added, err := svc.Submit(ctx, form)

	require.NoError(t, err)
	assert.Equal(t, "ICE-005", added.SKU)
	assert.Equal(t, "2026-12-01", added.Expiry)
	items, _ := store.All(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, added, items[1])
}

func TestInboundService_SubmitInvalidLeavesStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	svc := newInboundService(&fakeSource{locations: testLocations}, store)

	form := inboundForm()
	form.SKU = ""
	form.Qty = 0
	_, err := svc.Submit(ctx, form)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, models.FormErrors{
		models.FieldSKU: "SKU is required",
		models.FieldQty: "Quantity must be greater than 0",
	}, verr.Fields)
	assert.Equal(t, "validation failed: qty, sku", err.Error())

	items, _ := store.All(ctx)
	assert.Empty(t, items)
}

func TestInboundService_SubmitUnknownLocation(t *testing.T) {
	form := inboundForm()
	form.Location = "RACK-Z9"

	_, err := newInboundService(&fakeSource{locations: testLocations}, repository.NewMemoryItemStore()).Submit(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, models.FieldLocation)
}

func TestInboundService_SubmitWithoutCatalogue(t *testing.T) {
	form := inboundForm()
	form.Location = "RACK-Z9"
	source := &fakeSource{locationsErr: repository.ErrUnavailable}

	_, err := newInboundService(source, repository.NewMemoryItemStore()).Submit(context.Background(), form)

	assert.NoError(t, err)
}

func TestInboundService_SubmitPastExpiry(t *testing.T) {
	form := inboundForm()
	form.ExpiryDate = "2026-10-18"

	_, err := newInboundService(&fakeSource{locations: testLocations}, repository.NewMemoryItemStore()).Submit(context.Background(), form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Expiry date must be today or in the future", verr.Fields[models.FieldExpiryDate])
}

func TestInboundService_SubmitDuplicateKey(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	svc := newInboundService(&fakeSource{locations: testLocations}, store)

	_, err := svc.Submit(ctx, inboundForm())
	require.NoError(t, err)

	dup := inboundForm()
	dup.Qty = 5
	_, err = svc.Submit(ctx, dup)

	require.ErrorIs(t, err, ErrDuplicateItem)
	items, _ := store.All(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].Qty)
}

func TestInboundService_Clear(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	require.NoError(t, store.Replace(ctx, []models.InventoryItem{item("ICE-001", "B1", "2026-12-01", 50, "RACK-A1")}))

	require.NoError(t, newInboundService(&fakeSource{}, store).Clear(ctx))

	items, _ := store.All(ctx)
	assert.Empty(t, items)
}

func TestInboundService_SubmitWithoutCatalogueBlankLocation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryItemStore()
	form := inboundForm()
	form.Location = "   "

	_, err := newInboundService(&fakeSource{locationsErr: repository.ErrUnavailable}, store).Submit(ctx, form)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Location is required", verr.Fields[models.FieldLocation])
	items, _ := store.All(ctx)
	assert.Empty(t, items)
}
