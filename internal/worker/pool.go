package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

const popTimeout = 5 * time.Second

type queueClient interface {
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type notifier interface {
	SendContactNotification(to string, msg *models.ContactMessage) error
}

// Pool drains the contact notification queue.
type Pool struct {
	redis       queueClient
	email       notifier
	notifyEmail string
	workerCount int
	backoff     func(retry int) time.Duration
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

func NewPool(redisClient queueClient, email notifier, notifyEmail string, workerCount int) *Pool {
	if workerCount <= 0 {
		workerCount = 1
	}
	return &Pool{
		redis:       redisClient,
		email:       email,
		notifyEmail: notifyEmail,
		workerCount: workerCount,
		backoff: func(retry int) time.Duration {
			return time.Duration(1<<uint(retry)) * time.Second
		},
		stopChan: make(chan struct{}),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	log.Printf("Started %d worker goroutines", p.workerCount)
}

// Stop signals the workers and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	select {
	case <-p.stopChan:
		return
	default:
		close(p.stopChan)
	}
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			log.Printf("Worker %d shutting down", id)
			return
		default:
		}

		ctx := context.Background()

		result, err := p.redis.BLPop(ctx, popTimeout, services.ContactNotificationQueue).Result()
		if err != nil {
			continue // Timeout or error, retry
		}

		if len(result) < 2 {
			continue
		}

		p.process(ctx, id, result[1])
	}
}

func (p *Pool) process(ctx context.Context, id int, payload string) {
	var job models.Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Printf("Worker %d: failed to parse job: %v", id, err)
		return
	}

	lockKey := fmt.Sprintf("job_lock:%s", job.ID.String())
	locked, err := p.redis.SetNX(ctx, lockKey, "1", 10*time.Minute).Result()
	if err != nil || !locked {
		return // Another worker has this job
	}
	defer p.redis.Del(ctx, lockKey)

	log.Printf("Worker %d: processing job %s (type: %s)", id, job.ID, job.Type)

	var processErr error
	switch job.Type {
	case models.JobContactNotification:
		processErr = p.sendContactNotification(&job)
	default:
		processErr = fmt.Errorf("unknown job type: %s", job.Type)
	}

	if processErr != nil {
		p.handleFailure(&job, processErr)
		return
	}

	log.Printf("Job %s completed successfully", job.ID)
}

func (p *Pool) sendContactNotification(job *models.Job) error {
	if job.Contact == nil {
		return fmt.Errorf("job %s has no contact message", job.ID)
	}
	if p.notifyEmail == "" {
		return nil
	}
	return p.email.SendContactNotification(p.notifyEmail, job.Contact)
}

func (p *Pool) handleFailure(job *models.Job, err error) {
	job.RetryCount++
	errMsg := err.Error()

	maxRetries := job.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	if job.RetryCount >= maxRetries {
		log.Printf("Job %s failed permanently: %s", job.ID, errMsg)
		return
	}

	log.Printf("Job %s failed (attempt %d): %s, retrying", job.ID, job.RetryCount, errMsg)

	jobBytes, _ := json.Marshal(job)
	time.AfterFunc(p.backoff(job.RetryCount), func() {
		p.redis.LPush(context.Background(), services.ContactNotificationQueue, string(jobBytes))
	})
}
