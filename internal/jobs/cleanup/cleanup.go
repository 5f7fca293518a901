package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type readNotificationPurger interface {
	PurgeRead(ctx context.Context, before time.Time) (int64, error)
}

// Job removes read notifications past their retention. Unread notifications
// are never touched.
type Job struct {
	notifications readNotificationPurger
	retention     time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

func New(notifications readNotificationPurger, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		notifications: notifications,
		retention:     retention,
		now:           time.Now,
		logger:        logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.notifications == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	rows, err := j.notifications.PurgeRead(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge read notifications: %w", err)
	}
	if rows > 0 {
		j.logger.Info("purged read notifications", zap.Int64("deleted", rows))
	}
	return nil
}
