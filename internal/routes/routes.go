package routes

import (
	"fmt"
	"net/http"

	"ColdStore.wms/internal/controller"
	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/utils"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers the router dispatches to. Readings is nil
// when no time-series store is configured; its route is then not registered.
type Controllers struct {
	Dashboard *controller.DashboardController
	Inventory *controller.InventoryController
	Inbound   *controller.InboundController
	Readings  *controller.ReadingController
}

// SetupRouter defines all API routes.
func SetupRouter(c Controllers) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	router.HandleFunc("/health", health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = router.NotFoundHandler
	api.MethodNotAllowedHandler = router.MethodNotAllowedHandler

	SetupDashboardRoutes(api, c.Dashboard, c.Readings)
	SetupInventoryRoutes(api, c.Inventory, c.Inbound)

	return router
}

// SetupDashboardRoutes registers the temperature routes.
func SetupDashboardRoutes(router *mux.Router, dashboard *controller.DashboardController, readings *controller.ReadingController) {
	router.HandleFunc("/temperatures", dashboard.HandleGetTemperatures).Methods(http.MethodGet)
	router.HandleFunc("/temperatures/refresh", dashboard.HandleRefresh).Methods(http.MethodPost)
	if readings != nil {
		router.HandleFunc("/readings", readings.HandleRecordReadings).Methods(http.MethodPost)
	}
}

// SetupInventoryRoutes registers the inventory, inbound and location routes.
func SetupInventoryRoutes(router *mux.Router, inventory *controller.InventoryController, inbound *controller.InboundController) {
	router.HandleFunc("/inventory", inventory.HandleListInventory).Methods(http.MethodGet)
	router.HandleFunc("/inventory", inventory.HandleClearInventory).Methods(http.MethodDelete)
	router.HandleFunc("/inventory/export", inventory.HandleExportInventory).Methods(http.MethodGet)
	router.HandleFunc("/inventory/refresh", inventory.HandleRefreshInventory).Methods(http.MethodPost)
	router.HandleFunc("/inbound", inbound.HandleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/locations", inventory.HandleGetLocations).Methods(http.MethodGet)
}

func health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeNotFound,
		fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path), nil, http.StatusNotFound))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeMethodNotAllowed,
		fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path), nil, http.StatusMethodNotAllowed))
}
