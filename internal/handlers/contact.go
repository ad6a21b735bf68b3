package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type contactSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error)
}

type ContactHandler struct {
	contacts contactSubmitter
}

func NewContactHandler(contacts contactSubmitter) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body"))
		return
	}

	if _, err := h.contacts.Submit(r.Context(), req); err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			handleServiceError(w, r, err)
			return
		}
		log.Printf("Error processing contact form: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Internal Server Error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully"})
}
