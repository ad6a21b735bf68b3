package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"portfolio-backend/internal/models"
)

type chatReplier interface {
	Reply(ctx context.Context, req models.ChatRequest) (string, error)
}

type ChatHandler struct {
	chat chatReplier
}

func NewChatHandler(chat chatReplier) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat answers POST /api/chatbot with {reply} or {error, details?}.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	// An empty body is treated like a request without a message
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusInternalServerError, errorResp(err.Error()))
		return
	}

	reply, err := h.chat.Reply(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}
