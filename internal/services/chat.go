package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
)

// ChatService proxies chat messages to the configured upstream provider.
// It keeps no state between requests.
type ChatService struct {
	settings config.ChatSettings
	client   *http.Client
	metrics  *Metrics
	now      func() time.Time
}

// NewChatService builds the proxy. A nil client means http.DefaultClient.
func NewChatService(settings config.ChatSettings, client *http.Client, metrics *Metrics) *ChatService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ChatService{
		settings: settings,
		client:   client,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Reply validates the request, picks the upstream provider once and returns
// its normalized answer. There is no retry and no failover between providers.
func (s *ChatService) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", &ValidationError{Message: "Missing message"}
	}

	provider, err := s.settings.ResolveProvider(s.now())
	if err != nil {
		s.metrics.observeChat("none", "config_error")
		return "", &ConfigError{Message: err.Error()}
	}

	start := time.Now()
	var reply string
	switch provider.Kind {
	case config.ProviderAgent:
		reply, err = askAgent(ctx, s.client, provider, req.Message)
	default:
		reply, err = askCompletion(ctx, s.client, provider, BuildCompletionMessages(req.Message, req.Turns()))
	}
	s.metrics.observeUpstream(string(provider.Kind), time.Since(start))
	s.metrics.observeChat(string(provider.Kind), chatOutcome(err))

	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			log.Printf("chat: %s returned status %d", upstreamErr.Provider, upstreamErr.StatusCode)
		} else {
			log.Printf("chat: %s request failed: %v", provider.Kind, err)
		}
		return "", err
	}

	return reply, nil
}

func chatOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return "upstream_error"
	}
	return "error"
}
