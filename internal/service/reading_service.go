package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"ColdStore.wms/internal/models"

	"go.uber.org/zap"
)

// ReadingWriter persists sensor readings.
type ReadingWriter interface {
	WriteReadings(ctx context.Context, readings []models.TemperatureReading) error
}

// ReadingService accepts readings pushed by cold-room sensors.
type ReadingService struct {
	writer ReadingWriter
	logger *zap.Logger
}

// NewReadingService creates a new ReadingService.
func NewReadingService(writer ReadingWriter, logger *zap.Logger) *ReadingService {
	return &ReadingService{writer: writer, logger: logger}
}

// Record validates and writes readings. The batch is rejected as a whole when
// any entry is invalid.
func (s *ReadingService) Record(ctx context.Context, readings []models.TemperatureReading) error {
	if len(readings) == 0 {
		return &ValidationError{Fields: models.FormErrors{"readings": "At least one reading is required"}}
	}

	errs := models.FormErrors{}
	for i := range readings {
		readings[i].RoomID = strings.TrimSpace(readings[i].RoomID)
		if readings[i].RoomID == "" {
			errs[fmt.Sprintf("readings[%d].room_id", i)] = "Room ID is required"
		}
		if math.IsNaN(readings[i].Temperature) || math.IsInf(readings[i].Temperature, 0) {
			errs[fmt.Sprintf("readings[%d].temperature", i)] = "Temperature must be a finite number"
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.writer.WriteReadings(ctx, readings); err != nil {
		return fmt.Errorf("failed to record readings: %w", err)
	}

	s.logger.Debug("Readings recorded", zap.Int("count", len(readings)))
	return nil
}
