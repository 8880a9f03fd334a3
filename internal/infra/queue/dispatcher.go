package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"stayhub/internal/infra/repository"
	"stayhub/internal/pkg/config"
)

// Dispatcher drains the notification outbox on an interval and forwards
// each job to the broker. Claiming is a single atomic UPDATE, so the
// broker publish never runs inside an open transaction; a claimed job
// whose publish fails is marked failed with a retry window.
type Dispatcher struct {
	pool      *pgxpool.Pool
	jobs      *repository.NotificationRepository
	publisher *Publisher
	interval  time.Duration
	batchSize int

	done chan struct{}
}

func NewDispatcher(pool *pgxpool.Pool, publisher *Publisher, cfg config.AMQPConfig) *Dispatcher {
	return &Dispatcher{
		pool:      pool,
		jobs:      repository.NewNotificationRepository(),
		publisher: publisher,
		interval:  cfg.DispatchEvery,
		batchSize: cfg.DispatchBatch,
		done:      make(chan struct{}),
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	go d.run(ctx)
}

func (d *Dispatcher) Stop() {
	close(d.done)
}

func (d *Dispatcher) run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case <-ticker.C:
			if err := d.dispatchBatch(ctx); err != nil {
				slog.Error("outbox dispatch failed", "error", err)
			}
		}
	}
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) error {
	jobs, err := d.jobs.ClaimDue(ctx, d.pool, d.batchSize)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := d.publisher.Publish(ctx, job.Topic, job.Payload); err != nil {
			retryAt := time.Now().Add(retryDelay(job.Attempts))
			slog.Warn("notification publish failed",
				"job_id", job.ID, "kind", job.Kind, "attempts", job.Attempts, "retry_at", retryAt, "error", err)
			if markErr := d.jobs.MarkFailed(ctx, d.pool, job.ID, err.Error(), retryAt); markErr != nil {
				return markErr
			}
			continue
		}
		if err := d.jobs.MarkSent(ctx, d.pool, job.ID); err != nil {
			return err
		}
	}
	return nil
}

// retryDelay backs off exponentially per attempt, capped at 10 minutes.
func retryDelay(attempts int32) time.Duration {
	delay := 30 * time.Second
	for i := int32(1); i < attempts && delay < 10*time.Minute; i++ {
		delay *= 2
	}
	if delay > 10*time.Minute {
		delay = 10 * time.Minute
	}
	return delay
}
