package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Add(ctx context.Context, n model.Notification) error {
	if strings.TrimSpace(n.UserID) == "" || strings.TrimSpace(n.FromUserID) == "" || n.Type == "" {
		return fmt.Errorf("invalid notification payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO notifications (
	user_id,
	from_user_id,
	from_name,
	from_username,
	notification_type,
	message,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW())
`, n.UserID, n.FromUserID, n.FromName, n.FromUsername, string(n.Type), n.Message); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns notifications for a user, most recent first. The ordering is a
// product contract, not incidental.
func (r *NotificationRepo) List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, from_user_id, from_name, from_username, notification_type, message, is_read, created_at
FROM notifications
WHERE user_id = $1
	AND ($2::boolean = FALSE OR is_read = FALSE)
ORDER BY created_at DESC, id DESC
`, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Notification, 0, 16)
	for rows.Next() {
		var (
			n     model.Notification
			nType string
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.FromUserID, &n.FromName, &n.FromUsername, &nType, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Type = notificationType(nType)
		items = append(items, n)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate notifications: %w", rows.Err())
	}
	return items, nil
}

func (r *NotificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE
`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID int64) error {
	if notificationID <= 0 {
		return fmt.Errorf("invalid notification id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE notifications SET is_read = TRUE WHERE id = $1
`, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE notifications SET is_read = TRUE WHERE user_id = $1
`, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// PurgeRead deletes read notifications created before the cutoff and returns
// the number of rows removed.
func (r *NotificationRepo) PurgeRead(ctx context.Context, before time.Time) (int64, error) {
	if before.IsZero() {
		return 0, fmt.Errorf("invalid purge cutoff")
	}
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM notifications WHERE is_read = TRUE AND created_at < $1
`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

func notificationType(raw string) enums.NotificationType {
	return enums.NotificationType(strings.ToLower(strings.TrimSpace(raw)))
}
