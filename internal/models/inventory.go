package models

import "strings"

// InventoryItem is one stored stock line. Its identity is (SKU, Batch, Location).
type InventoryItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Batch    string `json:"batch"`
	Expiry   string `json:"expiry"` // ISO date, YYYY-MM-DD
	Qty      int    `json:"qty"`
	Location string `json:"location"`
}

// ItemKey is the composite key used for deduplication.
type ItemKey struct {
	SKU      string
	Batch    string
	Location string
}

// Key returns the item's composite key.
func (i InventoryItem) Key() ItemKey {
	return ItemKey{SKU: i.SKU, Batch: i.Batch, Location: i.Location}
}

// Location is static storage reference data.
type Location struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// InventoryRow is an item annotated for the inventory table.
type InventoryRow struct {
	InventoryItem
	NearExpiry      bool `json:"near_expiry"`
	Expired         bool `json:"expired"`
	DaysUntilExpiry int  `json:"days_until_expiry"`
}

// InventoryListResponse carries the filtered rows and the counters shown above the table.
type InventoryListResponse struct {
	Items   []InventoryRow `json:"items"`
	Total   int            `json:"total"`
	Showing int            `json:"showing"`
	Query   string         `json:"query,omitempty"`
}

// InboundForm is the payload of the "add new item" form.
type InboundForm struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	Batch      string `json:"batch"`
	ExpiryDate string `json:"expiry_date"`
	Qty        int    `json:"qty"`
	Location   string `json:"location"`
}

// Item converts a validated form into an inventory item with its text fields trimmed.
func (f InboundForm) Item() InventoryItem {
	return InventoryItem{
		SKU:      strings.TrimSpace(f.SKU),
		Name:     strings.TrimSpace(f.Name),
		Batch:    strings.TrimSpace(f.Batch),
		Expiry:   strings.TrimSpace(f.ExpiryDate),
		Qty:      f.Qty,
		Location: strings.TrimSpace(f.Location),
	}
}

// FormErrors maps a form field name to its validation message.
type FormErrors map[string]string

// Form field names as they appear in the JSON payload.
const (
	FieldSKU        = "sku"
	FieldName       = "name"
	FieldBatch      = "batch"
	FieldExpiryDate = "expiry_date"
	FieldQty        = "qty"
	FieldLocation   = "location"
)
