package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

type stubReplier struct {
	reply string
	err   error
	calls int
	last  models.ChatRequest
}

func (s *stubReplier) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.reply, s.err
}

func postChat(t *testing.T, h *ChatHandler, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.Chat(rr, req)

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&decoded))
	return rr, decoded
}

func TestChatHandler_Success(t *testing.T) {
	stub := &stubReplier{reply: "Hello!"}
	rr, body := postChat(t, NewChatHandler(stub), `{"message":"hi","history":[{"from":"user","text":"earlier"}]}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, map[string]interface{}{"reply": "Hello!"}, body)
	assert.Equal(t, "hi", stub.last.Message)
	assert.Equal(t, []models.ChatTurn{{From: "user", Text: "earlier"}}, stub.last.Turns())
}

func TestChatHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		expected map[string]interface{}
	}{
		{
			"missing message",
			&services.ValidationError{Message: "Missing message"},
			http.StatusBadRequest,
			map[string]interface{}{"error": "Missing message"},
		},
		{
			"missing configuration",
			&services.ConfigError{Message: config.ErrNoProviderConfigured.Error()},
			http.StatusInternalServerError,
			map[string]interface{}{"error": "Server missing API key. Set LYZR_API_KEY or OPENAI_API_KEY."},
		},
		{
			"upstream failure",
			&services.UpstreamError{Provider: "LYZR", StatusCode: 500, Body: "boom"},
			http.StatusBadGateway,
			map[string]interface{}{"error": "LYZR upstream error", "details": "boom"},
		},
		{
			"upstream failure with empty body",
			&services.UpstreamError{Provider: "OpenAI", StatusCode: 429, Body: ""},
			http.StatusBadGateway,
			map[string]interface{}{"error": "OpenAI upstream error", "details": ""},
		},
		{
			"unexpected failure",
			errors.New("dial tcp: connection refused"),
			http.StatusInternalServerError,
			map[string]interface{}{"error": "dial tcp: connection refused"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr, body := postChat(t, NewChatHandler(&stubReplier{err: tc.err}), `{"message":"hi"}`)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.expected, body)
		})
	}
}

func TestChatHandler_MalformedBody(t *testing.T) {
	stub := &stubReplier{}
	rr, body := postChat(t, NewChatHandler(stub), `{"message":`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, body["error"])
	assert.Zero(t, stub.calls)
}

func TestChatHandler_NonStringMessage(t *testing.T) {
	stub := &stubReplier{}
	rr, body := postChat(t, NewChatHandler(stub), `{"message":123}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, body["error"])
	assert.Zero(t, stub.calls)
}

// The real service behind the handler: no credentials and no message must
// both short-circuit before any network call.
func TestChatHandler_WithChatService(t *testing.T) {
	var upstreamCalls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls.Add(1)
		w.Write([]byte(`{"reply":"from agent"}`))
	}))
	defer upstream.Close()

	configured := NewChatHandler(services.NewChatService(config.ChatSettings{
		LyzrAPIKey:   "k",
		LyzrEndpoint: upstream.URL,
	}, upstream.Client(), nil))

	for _, body := range []string{``, `null`, `{}`, `{"message":""}`} {
		rr, decoded := postChat(t, configured, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "body %q", body)
		assert.Equal(t, map[string]interface{}{"error": "Missing message"}, decoded)
	}
	assert.Zero(t, upstreamCalls.Load())

	unconfigured := NewChatHandler(services.NewChatService(config.ChatSettings{}, upstream.Client(), nil))
	rr, decoded := postChat(t, unconfigured, `{"message":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decoded["error"], "OPENAI_API_KEY")
	assert.Zero(t, upstreamCalls.Load())

	rr, decoded = postChat(t, configured, `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]interface{}{"reply": "from agent"}, decoded)
	assert.EqualValues(t, 1, upstreamCalls.Load())
}
