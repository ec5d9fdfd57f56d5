package models

import "time"

// TemperatureStatus is derived from a reading and never stored.
type TemperatureStatus string

const (
	StatusNormal   TemperatureStatus = "Normal"
	StatusAbnormal TemperatureStatus = "Abnormal"
)

// TemperatureReading is a single cold-room sample as produced by a data source.
type TemperatureReading struct {
	RoomID      string    `json:"room_id"`
	Temperature float64   `json:"temperature"` // degrees Celsius
	Time        time.Time `json:"time,omitzero"` // zero when the source carries no timestamp
}

// RoomTemperature is a reading with its derived attributes, one per dashboard card.
type RoomTemperature struct {
	RoomID      string            `json:"room_id"`
	Temperature float64           `json:"temperature"`
	Display     string            `json:"display"`
	Status      TemperatureStatus `json:"status"`
	ColorScheme string            `json:"color_scheme"`
}

// DashboardSnapshot is what the dashboard page renders.
type DashboardSnapshot struct {
	Rooms         []RoomTemperature `json:"rooms"`
	AbnormalCount int               `json:"abnormal_count"`
	Status        LoadingState      `json:"status"`
	Error         string            `json:"error,omitempty"`
	LastUpdate    time.Time         `json:"last_update"`
	PollInterval  string            `json:"poll_interval"`
}
