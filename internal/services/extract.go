package services

import (
	"bytes"
	"encoding/json"
)

// replyExtractor is one attempt at reading a reply out of an agent envelope.
type replyExtractor func(raw json.RawMessage) (string, bool)

// agentReplyExtractors run in priority order; the first hit wins.
var agentReplyExtractors = []replyExtractor{
	plainStringReply,
	topLevelReply("reply"),
	topLevelReply("response"),
	topLevelReply("output_text"),
	nestedOutputReply,
}

// ExtractAgentReply normalizes an agent envelope into printable text. The
// envelope shape is not fixed, so unknown shapes come back as compact JSON
// rather than as an error.
func ExtractAgentReply(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if isFalsyJSON(raw) {
		return ""
	}

	for _, extract := range agentReplyExtractors {
		if reply, ok := extract(raw); ok {
			return reply
		}
	}

	return compactJSON(raw)
}

func plainStringReply(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func topLevelReply(field string) replyExtractor {
	return func(raw json.RawMessage) (string, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", false
		}
		return nonEmptyString(obj[field])
	}
}

// nestedOutputReply reads outputs[0].content[0].text.
func nestedOutputReply(raw json.RawMessage) (string, bool) {
	var envelope struct {
		Outputs []struct {
			Content []struct {
				Text json.RawMessage `json:"text"`
			} `json:"content"`
		} `json:"outputs"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", false
	}
	if len(envelope.Outputs) == 0 || len(envelope.Outputs[0].Content) == 0 {
		return "", false
	}
	return nonEmptyString(envelope.Outputs[0].Content[0].Text)
}

func nonEmptyString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

func isFalsyJSON(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "false", "0":
		return true
	}
	return false
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
