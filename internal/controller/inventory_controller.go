package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"ColdStore.wms/internal/service"
	"ColdStore.wms/internal/utils"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryController serves the inventory table and the location catalogue.
type InventoryController struct {
	inventory *service.InventoryService
	inbound   *service.InboundService
	logger    *zap.Logger
}

// NewInventoryController creates a new InventoryController.
func NewInventoryController(inventory *service.InventoryService, inbound *service.InboundService, logger *zap.Logger) *InventoryController {
	return &InventoryController{inventory: inventory, inbound: inbound, logger: logger}
}

// HandleListInventory returns the rows matching the q parameter.
func (c *InventoryController) HandleListInventory(w http.ResponseWriter, r *http.Request) {
	list, err := c.inventory.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// HandleRefreshInventory reloads the catalogue from the data source, merges it
// into the store and returns the rows matching q.
func (c *InventoryController) HandleRefreshInventory(w http.ResponseWriter, r *http.Request) {
	if err := c.inventory.Load(r.Context()); err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	c.HandleListInventory(w, r)
}

// HandleExportInventory sends the rows matching q as an XLSX attachment.
func (c *InventoryController) HandleExportInventory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := c.inventory.Export(r.Context(), &buf, r.URL.Query().Get("q")); err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		c.logger.Warn("Failed to send export", zap.Error(err))
	}
}

// HandleClearInventory empties the item store.
func (c *InventoryController) HandleClearInventory(w http.ResponseWriter, r *http.Request) {
	if err := c.inbound.Clear(r.Context()); err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetLocations returns the storage location catalogue.
func (c *InventoryController) HandleGetLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.inventory.Locations(r.Context())
	if err != nil {
		respondWithServiceError(w, c.logger, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, locations)
}
