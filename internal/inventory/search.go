package inventory

import (
	"strings"

	"ColdStore.wms/internal/models"
)

// FilterBySearch keeps the items whose SKU or name contains query, ignoring case.
// A blank query returns items as given.
func FilterBySearch(items []models.InventoryItem, query string) []models.InventoryItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	filtered := make([]models.InventoryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.SKU), q) || strings.Contains(strings.ToLower(item.Name), q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
