package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/datebot/internal/domain/enums"
)

// ErrVerdictConflict is returned when a like is recorded for a pair that
// already carries a dislike, or the other way around. A verdict is immutable
// once set.
var ErrVerdictConflict = errors.New("pair already has the opposite verdict")

type InteractionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *InteractionRepo {
	return &InteractionRepo{pool: pool}
}

type LikeInsert struct {
	// Inserted is false when the same like already existed (idempotent no-op).
	Inserted bool
	// Mutual reports whether the reverse like edge exists after the insert.
	Mutual bool
}

// AddLike records a like edge and checks the reverse edge in one transaction,
// so a concurrent like from the counterpart observes a consistent pair.
func (r *InteractionRepo) AddLike(ctx context.Context, fromID, toID string) (LikeInsert, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" || fromID == toID {
		return LikeInsert{}, fmt.Errorf("invalid like payload")
	}

	var result LikeInsert
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		disliked, err := edgeExists(txCtx, tx, "dislikes", fromID, toID)
		if err != nil {
			return err
		}
		if disliked {
			return ErrVerdictConflict
		}

		tag, err := tx.Exec(txCtx, `
INSERT INTO likes (from_user_id, to_user_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (from_user_id, to_user_id) DO NOTHING
`, fromID, toID)
		if err != nil {
			return fmt.Errorf("insert like: %w", err)
		}
		result.Inserted = tag.RowsAffected() > 0

		mutual, err := edgeExists(txCtx, tx, "likes", toID, fromID)
		if err != nil {
			return err
		}
		result.Mutual = mutual
		return nil
	})
	if err != nil {
		return LikeInsert{}, err
	}
	return result, nil
}

// AddDislike records a dislike edge. Returns false when the same dislike
// already existed. A standing like for the pair rejects the dislike.
func (r *InteractionRepo) AddDislike(ctx context.Context, fromID, toID string) (bool, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" || fromID == toID {
		return false, fmt.Errorf("invalid dislike payload")
	}

	var inserted bool
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		liked, err := edgeExists(txCtx, tx, "likes", fromID, toID)
		if err != nil {
			return err
		}
		if liked {
			return ErrVerdictConflict
		}

		tag, err := tx.Exec(txCtx, `
INSERT INTO dislikes (from_user_id, to_user_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (from_user_id, to_user_id) DO NOTHING
`, fromID, toID)
		if err != nil {
			return fmt.Errorf("insert dislike: %w", err)
		}
		inserted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *InteractionRepo) Verdict(ctx context.Context, fromID, toID string) (enums.Verdict, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" {
		return enums.VerdictNone, fmt.Errorf("invalid verdict lookup payload")
	}
	if r.pool == nil {
		return enums.VerdictNone, fmt.Errorf("postgres pool is nil")
	}

	var verdict string
	err := r.pool.QueryRow(ctx, `
SELECT 'like' FROM likes WHERE from_user_id = $1 AND to_user_id = $2
UNION ALL
SELECT 'dislike' FROM dislikes WHERE from_user_id = $1 AND to_user_id = $2
LIMIT 1
`, fromID, toID).Scan(&verdict)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return enums.VerdictNone, nil
		}
		return enums.VerdictNone, fmt.Errorf("lookup verdict: %w", err)
	}
	return enums.Verdict(verdict), nil
}

func (r *InteractionRepo) HasInteracted(ctx context.Context, fromID, toID string) (bool, error) {
	verdict, err := r.Verdict(ctx, fromID, toID)
	if err != nil {
		return false, err
	}
	return verdict != enums.VerdictNone, nil
}

// MatchedIDs returns the ids of users with a mutual like toward userID.
func (r *InteractionRepo) MatchedIDs(ctx context.Context, userID string) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT l.to_user_id
FROM likes l
WHERE l.from_user_id = $1
	AND EXISTS (
		SELECT 1 FROM likes r
		WHERE r.from_user_id = l.to_user_id AND r.to_user_id = $1
	)
ORDER BY l.created_at DESC, l.id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matched ids: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan matched id: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matched ids: %w", rows.Err())
	}
	return ids, nil
}

func (r *InteractionRepo) HasMutualLike(ctx context.Context, a, b string) (bool, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false, fmt.Errorf("invalid pair payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var mutual bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM likes WHERE from_user_id = $1 AND to_user_id = $2)
	AND EXISTS (SELECT 1 FROM likes WHERE from_user_id = $2 AND to_user_id = $1)
`, a, b).Scan(&mutual); err != nil {
		return false, fmt.Errorf("check mutual like: %w", err)
	}
	return mutual, nil
}

func edgeExists(ctx context.Context, tx pgx.Tx, table, fromID, toID string) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, fmt.Sprintf(`
SELECT 1 FROM %s WHERE from_user_id = $1 AND to_user_id = $2 LIMIT 1
`, table), fromID, toID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup %s edge: %w", table, err)
	}
	return true, nil
}
