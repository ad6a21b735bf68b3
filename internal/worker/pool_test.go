package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/models"
)

type stubQueue struct {
	mu      sync.Mutex
	locked  bool
	pushed  chan string
	deleted []string
}

func newStubQueue() *stubQueue {
	return &stubQueue{locked: true, pushed: make(chan string, 4)}
}

func (q *stubQueue) BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(nil, redis.Nil)
}

func (q *stubQueue) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	for _, v := range values {
		q.pushed <- v.(string)
	}
	return redis.NewIntResult(int64(len(values)), nil)
}

func (q *stubQueue) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(q.locked, nil)
}

func (q *stubQueue) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleted = append(q.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

type stubNotifier struct {
	err  error
	to   []string
	sent []*models.ContactMessage
}

func (n *stubNotifier) SendContactNotification(to string, msg *models.ContactMessage) error {
	n.to = append(n.to, to)
	n.sent = append(n.sent, msg)
	return n.err
}

func encodeJob(t *testing.T, job models.Job) string {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return string(b)
}

func TestProcess_SendsNotificationAndReleasesLock(t *testing.T) {
	queue := newStubQueue()
	email := &stubNotifier{}
	p := NewPool(queue, email, "owner@example.com", 1)

	job := models.Job{
		ID:      uuid.New(),
		Type:    models.JobContactNotification,
		Contact: &models.ContactMessage{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"},
	}
	p.process(context.Background(), 0, encodeJob(t, job))

	require.Len(t, email.sent, 1)
	assert.Equal(t, "owner@example.com", email.to[0])
	assert.Equal(t, "Ada", email.sent[0].Name)
	assert.Equal(t, []string{"job_lock:" + job.ID.String()}, queue.deleted)
}

func TestProcess_SkipsLockedJob(t *testing.T) {
	queue := newStubQueue()
	queue.locked = false
	email := &stubNotifier{}
	p := NewPool(queue, email, "owner@example.com", 1)

	job := models.Job{ID: uuid.New(), Type: models.JobContactNotification, Contact: &models.ContactMessage{}}
	p.process(context.Background(), 0, encodeJob(t, job))

	assert.Empty(t, email.sent)
}

func TestProcess_IgnoresMalformedPayload(t *testing.T) {
	email := &stubNotifier{}
	p := NewPool(newStubQueue(), email, "owner@example.com", 1)

	p.process(context.Background(), 0, "{not json")

	assert.Empty(t, email.sent)
}

func TestProcess_RequeuesFailedJob(t *testing.T) {
	queue := newStubQueue()
	email := &stubNotifier{err: errors.New("smtp down")}
	p := NewPool(queue, email, "owner@example.com", 1)
	p.backoff = func(int) time.Duration { return 0 }

	job := models.Job{
		ID:         uuid.New(),
		Type:       models.JobContactNotification,
		Contact:    &models.ContactMessage{Name: "Ada"},
		MaxRetries: 3,
	}
	p.process(context.Background(), 0, encodeJob(t, job))

	select {
	case payload := <-queue.pushed:
		var requeued models.Job
		require.NoError(t, json.Unmarshal([]byte(payload), &requeued))
		assert.Equal(t, job.ID, requeued.ID)
		assert.Equal(t, 1, requeued.RetryCount)
	case <-time.After(2 * time.Second):
		t.Fatal("expected failed job to be re-queued")
	}
}

func TestProcess_DropsJobAfterMaxRetries(t *testing.T) {
	queue := newStubQueue()
	email := &stubNotifier{err: errors.New("smtp down")}
	p := NewPool(queue, email, "owner@example.com", 1)
	p.backoff = func(int) time.Duration { return 0 }

	job := models.Job{
		ID:         uuid.New(),
		Type:       models.JobContactNotification,
		Contact:    &models.ContactMessage{Name: "Ada"},
		RetryCount: 2,
		MaxRetries: 3,
	}
	p.process(context.Background(), 0, encodeJob(t, job))

	select {
	case <-queue.pushed:
		t.Fatal("job past its retry budget must not be re-queued")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStartStop(t *testing.T) {
	p := NewPool(newStubQueue(), &stubNotifier{}, "", 2)
	p.Start()

	done := make(chan struct{})
	go func() {
		p.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	// A second Stop is a no-op
	p.Stop()
}
