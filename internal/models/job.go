package models

import (
	"time"

	"github.com/google/uuid"
)

const JobContactNotification = "contact-notification"

// Job is a queued background task. Payload carries the contact message the
// notification is about.
type Job struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"` // "contact-notification"
	Contact    *ContactMessage `json:"contact"`
	RetryCount int             `json:"retry_count"`
	MaxRetries int             `json:"max_retries"`
	CreatedAt  time.Time       `json:"created_at"`
}

// API Error response. Every error body the API returns has this flat shape.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details *string           `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
