package utils

import (
	"encoding/json"
	"net/http"

	"ColdStore.wms/internal/models"

	"go.uber.org/zap"
)

// RespondWithError sends a JSON error response using the APIError model.
// The HTTP status code is taken from the APIError.
func RespondWithError(writer http.ResponseWriter, apiErr models.APIError) {
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = http.StatusInternalServerError
	}
	RespondWithJSON(writer, apiErr.StatusCode, apiErr)
}

// RespondWithJSON sends a JSON response. A nil payload sends only the status.
func RespondWithJSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		zap.L().Error("Failed to encode JSON response", zap.Error(err))
	}
}
