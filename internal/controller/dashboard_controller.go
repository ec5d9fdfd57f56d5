package controller

import (
	"context"
	"net/http"

	"ColdStore.wms/internal/service"
	"ColdStore.wms/internal/utils"

	"go.uber.org/zap"
)

// DashboardController serves the temperature dashboard.
type DashboardController struct {
	service *service.DashboardService
	logger  *zap.Logger
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(service *service.DashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{service: service, logger: logger}
}

// HandleGetTemperatures returns the latest dashboard snapshot.
func (c *DashboardController) HandleGetTemperatures(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.service.Snapshot())
}

// HandleRefresh runs a refresh immediately. A failed refresh still returns the
// snapshot, which carries the error message for the retry banner. The fetch
// outlives a client that disconnects.
func (c *DashboardController) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Refresh(context.WithoutCancel(r.Context())); err != nil {
		c.logger.Debug("Manual refresh failed", zap.Error(err))
	}
	utils.RespondWithJSON(w, http.StatusOK, c.service.Snapshot())
}
