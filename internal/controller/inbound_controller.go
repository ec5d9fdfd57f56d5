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

// InboundController accepts new stock.
type InboundController struct {
	service *service.InboundService
	logger  *zap.Logger
}

// NewInboundController creates a new InboundController.
func NewInboundController(service *service.InboundService, logger *zap.Logger) *InboundController {
	return &InboundController{service: service, logger: logger}
}

// HandleSubmit validates the form and stores the new item.
func (c *InboundController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var form models.InboundForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		apiErr := models.NewAPIError(models.ErrorCodeInvalidFormat, fmt.Sprintf("Invalid request payload: %v", err), nil, http.StatusBadRequest)
		utils.RespondWithError(w, apiErr)
		return
	}

	item, err := c.service.Submit(r.Context(), form)
	if err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, item)
}
