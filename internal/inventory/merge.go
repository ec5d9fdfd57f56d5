// Package inventory holds the inventory business rules: search, merge and
// inbound validation.
package inventory

import "ColdStore.wms/internal/models"

// Merge reconciles stored items with freshly fetched ones by composite key.
// Existing entries win on collision; incoming entries only fill gaps. The result
// lists existing items first, then the surviving incoming items, each in their
// original order.
func Merge(existing, incoming []models.InventoryItem) []models.InventoryItem {
	index := make(map[models.ItemKey]int, len(existing)+len(incoming))
	merged := make([]models.InventoryItem, 0, len(existing)+len(incoming))

	for _, item := range existing {
		if i, ok := index[item.Key()]; ok {
			merged[i] = item
			continue
		}
		index[item.Key()] = len(merged)
		merged = append(merged, item)
	}

	for _, item := range incoming {
		if _, ok := index[item.Key()]; ok {
			continue
		}
		index[item.Key()] = len(merged)
		merged = append(merged, item)
	}

	return merged
}

// Contains reports whether an item with the same composite key is in items.
func Contains(items []models.InventoryItem, key models.ItemKey) bool {
	for _, item := range items {
		if item.Key() == key {
			return true
		}
	}
	return false
}
