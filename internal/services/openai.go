package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
)

const openAIProvider = "OpenAI"

// SystemPrompt sets the assistant persona on the completion upstream.
const SystemPrompt = `You are an Expert at answering questions about Aashish Jaini, providing accurate and polite responses.

Instructions:
1. Respond to inquiries regarding Aashish Jaini with courtesy and politeness.
2. Provide ALL relevant information about Aashish, ensuring that responses are truthful and based solely on the information available.
3. If a question asks for information not present in your knowledge, clearly indicate that you do not have that data.
4. Maintain professionalism throughout the conversation, especially since the context may involve a recruiter in an AI startup/company.`

type openAIChatRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	TopP        float64              `json:"top_p"`
	MaxTokens   int                  `json:"max_tokens"`
}

// BuildCompletionMessages lays out the conversation as system prompt, prior
// turns in order, then the new user message.
func BuildCompletionMessages(message string, history []models.ChatTurn) []models.ChatMessage {
	messages := make([]models.ChatMessage, 0, len(history)+2)
	messages = append(messages, models.ChatMessage{Role: "system", Content: SystemPrompt})
	for _, turn := range history {
		messages = append(messages, models.ChatMessage{Role: turn.Role(), Content: turn.Text})
	}
	messages = append(messages, models.ChatMessage{Role: "user", Content: message})
	return messages
}

func askCompletion(ctx context.Context, client *http.Client, p *config.ProviderConfig, messages []models.ChatMessage) (string, error) {
	payload := openAIChatRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxTokens:   p.MaxTokens,
	}

	body, err := postJSON(ctx, client, openAIProvider, p.Endpoint, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", p.APIKey),
	}, payload)
	if err != nil {
		return "", err
	}

	if !json.Valid(body) {
		return "", fmt.Errorf("decode %s response: invalid JSON", openAIProvider)
	}
	return completionContent(body), nil
}

// completionContent reads choices[0].message.content. Any missing or
// mistyped step degrades to an empty reply.
func completionContent(body []byte) string {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	var choices []json.RawMessage
	if err := json.Unmarshal(envelope["choices"], &choices); err != nil || len(choices) == 0 {
		return ""
	}
	var choice struct {
		Message map[string]json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(choices[0], &choice); err != nil {
		return ""
	}
	content, _ := nonEmptyString(choice.Message["content"])
	return content
}
