package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"portfolio-backend/internal/config"
)

const lyzrProvider = "LYZR"

type lyzrChatRequest struct {
	UserID    string `json:"user_id"`
	AgentID   string `json:"agent_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// askAgent sends message to the agent upstream. Prior turns are not forwarded;
// the agent keeps its own session.
func askAgent(ctx context.Context, client *http.Client, p *config.ProviderConfig, message string) (string, error) {
	payload := lyzrChatRequest{
		UserID:    p.UserID,
		AgentID:   p.AgentID,
		SessionID: p.SessionID,
		Message:   message,
	}

	body, err := postJSON(ctx, client, lyzrProvider, p.Endpoint, map[string]string{
		"x-api-key": p.APIKey,
	}, payload)
	if err != nil {
		return "", err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decode %s response: %w", lyzrProvider, err)
	}

	return ExtractAgentReply(raw), nil
}
