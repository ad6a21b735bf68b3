package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultLyzrEndpoint = "https://agent-prod.studio.lyzr.ai/v3/inference/chat/"
	DefaultLyzrAgentID  = "6910378800314db53fb681cb"
	DefaultLyzrUserID   = "anonymous@local"

	DefaultOpenAIEndpoint    = "https://api.openai.com/v1/chat/completions"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultOpenAITemperature = 0.7
	DefaultOpenAITopP        = 0.9
	DefaultOpenAIMaxTokens   = 800
)

// ErrNoProviderConfigured is returned by ResolveProvider when neither
// upstream credential is set.
var ErrNoProviderConfigured = errors.New("Server missing API key. Set LYZR_API_KEY or OPENAI_API_KEY.")

type ProviderKind string

const (
	ProviderAgent    ProviderKind = "agent"
	ProviderFallback ProviderKind = "fallback"
)

// ChatSettings is the process-wide snapshot of chat upstream configuration.
// Build it with DefaultChatSettings or LoadChatSettings; zero sampling
// values are sent as-is.
type ChatSettings struct {
	LyzrAPIKey    string
	LyzrEndpoint  string
	LyzrAgentID   string
	LyzrUserID    string
	LyzrSessionID string

	OpenAIAPIKey      string
	OpenAIEndpoint    string
	OpenAIModel       string
	OpenAITemperature float64
	OpenAITopP        float64
	OpenAIMaxTokens   int
}

// DefaultChatSettings returns settings with every non-credential field at
// its default.
func DefaultChatSettings() ChatSettings {
	return ChatSettings{
		LyzrEndpoint:      DefaultLyzrEndpoint,
		LyzrAgentID:       DefaultLyzrAgentID,
		LyzrUserID:        DefaultLyzrUserID,
		OpenAIEndpoint:    DefaultOpenAIEndpoint,
		OpenAIModel:       DefaultOpenAIModel,
		OpenAITemperature: DefaultOpenAITemperature,
		OpenAITopP:        DefaultOpenAITopP,
		OpenAIMaxTokens:   DefaultOpenAIMaxTokens,
	}
}

// ProviderConfig is the upstream selected for a single chat request.
type ProviderConfig struct {
	Kind     ProviderKind
	APIKey   string
	Endpoint string

	// Agent identity
	UserID    string
	AgentID   string
	SessionID string

	// Completion parameters
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// ResolveProvider picks the agent upstream whenever its key is present and
// falls back to the completion upstream otherwise. now seeds the default
// session id.
func (s ChatSettings) ResolveProvider(now time.Time) (*ProviderConfig, error) {
	if s.LyzrAPIKey != "" {
		agentID := orDefault(s.LyzrAgentID, DefaultLyzrAgentID)
		sessionID := s.LyzrSessionID
		if sessionID == "" {
			sessionID = fmt.Sprintf("%s-%d", agentID, now.UnixMilli())
		}
		return &ProviderConfig{
			Kind:      ProviderAgent,
			APIKey:    s.LyzrAPIKey,
			Endpoint:  orDefault(s.LyzrEndpoint, DefaultLyzrEndpoint),
			UserID:    orDefault(s.LyzrUserID, DefaultLyzrUserID),
			AgentID:   agentID,
			SessionID: sessionID,
		}, nil
	}

	if s.OpenAIAPIKey != "" {
		maxTokens := s.OpenAIMaxTokens
		if maxTokens <= 0 {
			maxTokens = DefaultOpenAIMaxTokens
		}
		return &ProviderConfig{
			Kind:        ProviderFallback,
			APIKey:      s.OpenAIAPIKey,
			Endpoint:    orDefault(s.OpenAIEndpoint, DefaultOpenAIEndpoint),
			Model:       orDefault(s.OpenAIModel, DefaultOpenAIModel),
			Temperature: s.OpenAITemperature,
			TopP:        s.OpenAITopP,
			MaxTokens:   maxTokens,
		}, nil
	}

	return nil, ErrNoProviderConfigured
}

func orDefault(val, defaultVal string) string {
	if val == "" {
		return defaultVal
	}
	return val
}
