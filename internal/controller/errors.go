package controller

import (
	"errors"
	"net/http"

	"ColdStore.wms/internal/models"
	"ColdStore.wms/internal/repository"
	"ColdStore.wms/internal/service"
	"ColdStore.wms/internal/utils"

	"go.uber.org/zap"
)

// respondWithServiceError maps a service error onto the API error model.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeValidationFailed,
			"Please correct the highlighted fields", validationErr.Fields, http.StatusUnprocessableEntity))
	case errors.Is(err, service.ErrDuplicateItem):
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeDuplicateResource,
			err.Error(), nil, http.StatusConflict))
	case errors.Is(err, repository.ErrUnavailable):
		logger.Warn("Upstream data source unavailable", zap.Error(err))
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeUpstreamUnavailable,
			err.Error(), nil, http.StatusBadGateway))
	default:
		logger.Error("Request failed", zap.Error(err))
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeInternalServerError,
			err.Error(), nil, http.StatusInternalServerError))
	}
}
