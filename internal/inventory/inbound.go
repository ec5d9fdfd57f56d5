package inventory

import (
	"strings"

	"ColdStore.wms/internal/expiry"
	"ColdStore.wms/internal/models"
)

// Validator checks inbound forms. Every field is checked; the result is empty
// when the form can be submitted.
type Validator struct {
	Calendar  expiry.Calendar
	Locations []models.Location // optional catalogue; nil skips the membership check
}

// Validate returns the per-field errors of form.
func (v Validator) Validate(form models.InboundForm) models.FormErrors {
	errs := models.FormErrors{}

	if strings.TrimSpace(form.SKU) == "" {
		errs[models.FieldSKU] = "SKU is required"
	}
	if strings.TrimSpace(form.Name) == "" {
		errs[models.FieldName] = "Name is required"
	}
	if strings.TrimSpace(form.Batch) == "" {
		errs[models.FieldBatch] = "Batch is required"
	}

	expiryDate := strings.TrimSpace(form.ExpiryDate)
	if expiryDate == "" {
		errs[models.FieldExpiryDate] = "Expiry date is required"
	} else if !v.Calendar.IsValidFutureDate(expiryDate) {
		errs[models.FieldExpiryDate] = "Expiry date must be today or in the future"
	}

	if form.Qty <= 0 {
		errs[models.FieldQty] = "Quantity must be greater than 0"
	}

	location := strings.TrimSpace(form.Location)
	if location == "" {
		errs[models.FieldLocation] = "Location is required"
	} else if v.Locations != nil && !knownLocation(v.Locations, location) {
		errs[models.FieldLocation] = "Location is not a known storage location"
	}

	return errs
}

func knownLocation(locations []models.Location, id string) bool {
	for _, loc := range locations {
		if loc.ID == id {
			return true
		}
	}
	return false
}
