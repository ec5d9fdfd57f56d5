package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/service"
	"ColdStore.wms/internal/utils"

	"go.uber.org/zap"
)

// ReadingController accepts sensor readings.
type ReadingController struct {
	service *service.ReadingService
	logger  *zap.Logger
}

// NewReadingController creates a new ReadingController.
func NewReadingController(service *service.ReadingService, logger *zap.Logger) *ReadingController {
	return &ReadingController{service: service, logger: logger}
}

// HandleRecordReadings stores a batch of readings.
func (c *ReadingController) HandleRecordReadings(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var readings []models.TemperatureReading
	if err := json.NewDecoder(r.Body).Decode(&readings); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, fmt.Sprintf("error unmarshalling JSON: %v", err), nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	if err := c.service.Record(r.Context(), readings); err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Readings recorded",
		"count":   len(readings),
	})
}
