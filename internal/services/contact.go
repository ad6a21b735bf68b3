package services

import (
	"context"
	"encoding/json"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"portfolio-backend/internal/models"
)

const ContactNotificationQueue = "queue:contact-notifications"

type contactStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type jobQueue interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

type ContactService struct {
	store       contactStore
	queue       jobQueue
	notifyEmail string
	metrics     *Metrics
}

// NewContactService wires the contact form. queue may be nil, and an empty
// notifyEmail disables owner notifications.
func NewContactService(store contactStore, queue jobQueue, notifyEmail string, metrics *Metrics) *ContactService {
	return &ContactService{
		store:       store,
		queue:       queue,
		notifyEmail: notifyEmail,
		metrics:     metrics,
	}
}

// Submit validates and persists a contact message, then queues the owner
// notification. A queueing failure does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactMessage, error) {
	msg, err := validateContact(req)
	if err != nil {
		s.metrics.observeContact("invalid")
		return nil, err
	}

	if err := s.store.Create(ctx, msg); err != nil {
		s.metrics.observeContact("error")
		return nil, err
	}
	s.metrics.observeContact("ok")

	if s.queue != nil && s.notifyEmail != "" {
		s.enqueueNotification(ctx, msg)
	}

	return msg, nil
}

func (s *ContactService) enqueueNotification(ctx context.Context, msg *models.ContactMessage) {
	job := models.Job{
		ID:         uuid.New(),
		Type:       models.JobContactNotification,
		Contact:    msg,
		MaxRetries: 3,
		CreatedAt:  time.Now().UTC(),
	}

	jobBytes, err := json.Marshal(job)
	if err != nil {
		log.Printf("contact: failed to encode notification job for %s: %v", msg.ID, err)
		return
	}

	if err := s.queue.LPush(ctx, ContactNotificationQueue, string(jobBytes)).Err(); err != nil {
		log.Printf("contact: failed to queue notification for %s: %v", msg.ID, err)
	}
}

func validateContact(req models.ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	fields := map[string]string{}
	if msg.Name == "" {
		fields["name"] = "Name is required"
	}
	if !isEmailAddress(msg.Email) {
		fields["email"] = "Invalid email address"
	}
	if msg.Subject == "" {
		fields["subject"] = "Subject is required"
	}
	if msg.Message == "" {
		fields["message"] = "Message is required"
	}

	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return msg, nil
}

// isEmailAddress accepts a bare address only, not "Name <addr>".
func isEmailAddress(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".")
}
