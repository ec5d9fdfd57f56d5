package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ColdStore.wms/internal/fetch"
	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"
	"ColdStore.wms/internal/temperature"

	"go.uber.org/zap"
)

// DashboardService keeps the latest classified temperature snapshot.
type DashboardService struct {
	source       repository.TemperatureSource
	tracker      *fetch.Tracker[[]models.RoomTemperature]
	pollInterval time.Duration
	now          func() time.Time
	logger       *zap.Logger

	mu         sync.RWMutex
	lastUpdate time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(source repository.TemperatureSource, pollInterval time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		source:       source,
		tracker:      fetch.NewTracker[[]models.RoomTemperature](),
		pollInterval: pollInterval,
		now:          time.Now,
		logger:       logger,
	}
}

// Refresh fetches and classifies the current readings. A result that arrives
// after a newer refresh has started is discarded. A refresh whose ctx ends
// mid-fetch leaves the snapshot as it was.
func (s *DashboardService) Refresh(ctx context.Context) error {
	ticket := s.tracker.Begin()

	readings, err := s.source.FetchTemperatures(ctx)
	if err != nil && ctx.Err() != nil {
		// Caller went away mid-fetch.
		s.tracker.Abandon(ticket)
		s.logger.Debug("Temperature refresh abandoned", zap.Error(err))
		return err
	}
	if err != nil {
		err = fmt.Errorf("failed to load temperatures: %w", err)
		s.tracker.Resolve(ticket, nil, err)
		s.logger.Warn("Temperature refresh failed", zap.Error(err))
		return err
	}

	rooms := make([]models.RoomTemperature, 0, len(readings))
	abnormal := 0
	for _, reading := range readings {
		room := temperature.Annotate(reading)
		if room.Status == models.StatusAbnormal {
			abnormal++
		}
		rooms = append(rooms, room)
	}

	if !s.tracker.Resolve(ticket, rooms, nil) {
		s.logger.Debug("Discarded stale temperature result")
		return nil
	}

	s.mu.Lock()
	s.lastUpdate = s.now()
	s.mu.Unlock()

	if abnormal > 0 {
		s.logger.Warn("Abnormal room temperature detected",
			zap.Int("abnormal_count", abnormal),
			zap.Int("room_count", len(rooms)),
		)
	}
	return nil
}

// Poll is the poller action; failures are already recorded in the snapshot.
func (s *DashboardService) Poll(ctx context.Context) {
	_ = s.Refresh(ctx)
}

// Snapshot returns what the dashboard renders.
func (s *DashboardService) Snapshot() models.DashboardSnapshot {
	state := s.tracker.State()

	rooms := []models.RoomTemperature{}
	if state.HasData {
		rooms = append(rooms, state.Data...)
	}

	abnormal := 0
	for _, room := range rooms {
		if room.Status == models.StatusAbnormal {
			abnormal++
		}
	}

	status := state.Status
	if status == models.StateIdle {
		// Nothing has been requested yet; the first poll is about to run.
		status = models.StateLoading
	}

	s.mu.RLock()
	lastUpdate := s.lastUpdate
	s.mu.RUnlock()

	return models.DashboardSnapshot{
		Rooms:         rooms,
		AbnormalCount: abnormal,
		Status:        status,
		Error:         state.Error,
		LastUpdate:    lastUpdate,
		PollInterval:  s.pollInterval.String(),
	}
}

// Close discards any refresh still in flight.
func (s *DashboardService) Close() {
	s.tracker.Close()
}
