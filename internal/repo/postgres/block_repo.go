package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BlockRepo stores the permanent chat-block relation. Pairs are kept in
// canonical order (smaller id first) so (A,B) and (B,A) are the same fact.
type BlockRepo struct {
	pool *pgxpool.Pool
}

func NewBlockRepo(pool *pgxpool.Pool) *BlockRepo {
	return &BlockRepo{pool: pool}
}

func (r *BlockRepo) Block(ctx context.Context, a, b string) error {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" || a == b {
		return fmt.Errorf("invalid block payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	first, second := canonicalPair(a, b)
	if _, err := r.pool.Exec(ctx, `
INSERT INTO blocked_chats (user_a_id, user_b_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
`, first, second); err != nil {
		return fmt.Errorf("insert chat block: %w", err)
	}
	return nil
}

func (r *BlockRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false, fmt.Errorf("invalid block lookup payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	first, second := canonicalPair(a, b)
	var blocked bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (
	SELECT 1 FROM blocked_chats WHERE user_a_id = $1 AND user_b_id = $2
)
`, first, second).Scan(&blocked); err != nil {
		return false, fmt.Errorf("check chat block: %w", err)
	}
	return blocked, nil
}

func canonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
