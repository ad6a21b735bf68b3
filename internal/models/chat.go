package models

import "encoding/json"

// ChatTurn is one prior exchange as the chat widget sends it back.
type ChatTurn struct {
	From string `json:"from"` // "user" or "bot"
	Text string `json:"text"`
}

// Role maps the widget speaker onto an upstream chat role.
func (t ChatTurn) Role() string {
	if t.From == "user" {
		return "user"
	}
	return "assistant"
}

// ChatMessage is the provider-facing {role, content} message.
type ChatMessage struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. History is kept raw
// so a non-array value is ignored instead of failing the request.
type ChatRequest struct {
	Message string          `json:"message"`
	History json.RawMessage `json:"history,omitempty"`
}

// Turns decodes History one entry at a time. A non-array History yields
// nil; an entry that is not a {from, text} object is skipped on its own.
func (r ChatRequest) Turns() []ChatTurn {
	if len(r.History) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(r.History, &entries); err != nil {
		return nil
	}
	turns := make([]ChatTurn, 0, len(entries))
	for _, entry := range entries {
		var turn *ChatTurn
		if err := json.Unmarshal(entry, &turn); err != nil || turn == nil {
			continue
		}
		turns = append(turns, *turn)
	}
	return turns
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}
