package services

import (
	"testing"
	"time"

	"portfolio-backend/internal/models"
)

func TestHeaderSafe(t *testing.T) {
	got := headerSafe("Hello\r\nBcc: victim@example.com")
	if got != "Hello  Bcc: victim@example.com" {
		t.Fatalf("expected line breaks to be stripped, got %q", got)
	}
}

func TestSendContactNotification_DevMode(t *testing.T) {
	s := NewEmailService("", "587", "", "", "noreply@localhost")
	if !s.devMode {
		t.Fatalf("expected dev mode without SMTP host")
	}

	err := s.SendContactNotification("owner@example.com", &models.ContactMessage{
		Name:      "Ada",
		Email:     "ada@example.com",
		Subject:   "<script>",
		Message:   "hi",
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("dev mode send should not fail: %v", err)
	}
}
