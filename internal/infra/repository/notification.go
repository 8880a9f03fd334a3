package repository

import (
	"context"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository writes transactional-outbox rows; the queue
// dispatcher drains them outside the request path.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

const createJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'pending', $5, $5)`

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := tx.Exec(ctx, createJobSQL, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

const claimDueJobsSQL = `
UPDATE notification_jobs
SET status = 'sending', attempts = attempts + 1, updated_at = now()
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE (status IN ('pending', 'failed') AND run_at <= now())
       OR (status = 'sending' AND updated_at < now() - interval '10 minutes')
    ORDER BY run_at
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, attempts`

// ClaimDue marks a batch of due jobs as in-flight and returns them.
// SKIP LOCKED keeps concurrent dispatchers from double-claiming; jobs
// stuck in 'sending' past the stale window are reclaimed.
func (r *NotificationRepository) ClaimDue(ctx context.Context, tx db.DBTX, limit int) ([]NotificationJob, error) {
	rows, err := tx.Query(ctx, claimDueJobsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var j NotificationJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Topic, &j.Payload, &j.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE notification_jobs SET status = 'sent', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, retryAt time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE notification_jobs SET status = 'failed', last_error = $2, run_at = $3, updated_at = now() WHERE id = $1`,
		id, lastError, retryAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
