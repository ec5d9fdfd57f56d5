// Package temperature classifies cold-room readings.
package temperature

import (
	"ColdStore.wms/internal/models"

	"github.com/shopspring/decimal"
)

// Normal operating range of a cold room, inclusive on both ends.
const (
	MinNormalCelsius = -20.0
	MaxNormalCelsius = -16.0
)

// Classify returns Normal iff MinNormalCelsius <= celsius <= MaxNormalCelsius.
func Classify(celsius float64) models.TemperatureStatus {
	if celsius >= MinNormalCelsius && celsius <= MaxNormalCelsius {
		return models.StatusNormal
	}
	return models.StatusAbnormal
}

// ColorScheme returns the badge colour for a status.
func ColorScheme(status models.TemperatureStatus) string {
	if status == models.StatusNormal {
		return "green"
	}
	return "red"
}

// Display renders a reading with one decimal, e.g. "-18.5".
func Display(celsius float64) string {
	return decimal.NewFromFloat(celsius).StringFixed(1)
}

// Annotate builds the dashboard view of a reading.
func Annotate(r models.TemperatureReading) models.RoomTemperature {
	status := Classify(r.Temperature)
	return models.RoomTemperature{
		RoomID:      r.RoomID,
		Temperature: r.Temperature,
		Display:     Display(r.Temperature),
		Status:      status,
		ColorScheme: ColorScheme(status),
	}
}
