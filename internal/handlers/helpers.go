package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.ErrorResponse {
	if message == "" {
		message = "Internal Server Error"
	}
	return models.ErrorResponse{Error: message}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *services.ValidationError
		configErr     *services.ConfigError
		upstreamErr   *services.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		resp := errorResp(validationErr.Error())
		resp.Fields = validationErr.Fields
		writeJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &configErr):
		writeJSON(w, http.StatusInternalServerError, errorResp(configErr.Message))
	case errors.As(err, &upstreamErr):
		details := upstreamErr.Body
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{
			Error:   upstreamErr.Error(),
			Details: &details,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp(err.Error()))
	}
}
