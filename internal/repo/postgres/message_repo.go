package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/datebot/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Save(ctx context.Context, fromID, toID, text string) error {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" || strings.TrimSpace(text) == "" {
		return fmt.Errorf("invalid message payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO messages (from_user_id, to_user_id, body, created_at)
VALUES ($1, $2, $3, NOW())
`, fromID, toID, text); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// ListBetween returns the latest messages exchanged between a and b, oldest
// first.
func (r *MessageRepo) ListBetween(ctx context.Context, a, b string, limit int) ([]model.Message, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return nil, fmt.Errorf("invalid message lookup payload")
	}
	if limit <= 0 {
		limit = 10
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, from_user_id, to_user_id, body, is_read, created_at
FROM (
	SELECT id, from_user_id, to_user_id, body, is_read, created_at
	FROM messages
	WHERE (from_user_id = $1 AND to_user_id = $2)
		OR (from_user_id = $2 AND to_user_id = $1)
	ORDER BY created_at DESC, id DESC
	LIMIT $3
) latest
ORDER BY created_at ASC, id ASC
`, a, b, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]model.Message, 0, limit)
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.FromUserID, &msg.ToUserID, &msg.Text, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, msg)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}
	return items, nil
}
