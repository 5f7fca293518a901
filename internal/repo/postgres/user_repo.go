package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)
`, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepo) Create(ctx context.Context, profile model.Profile) error {
	if strings.TrimSpace(profile.UserID) == "" {
		return fmt.Errorf("invalid profile payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	categories, err := marshalCategories(profile.Categories)
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO users (
	user_id,
	username,
	name,
	age,
	gender,
	bio,
	categories,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
	username = EXCLUDED.username,
	name = EXCLUDED.name,
	age = EXCLUDED.age,
	gender = EXCLUDED.gender,
	bio = EXCLUDED.bio,
	categories = EXCLUDED.categories,
	updated_at = NOW()
`, profile.UserID, profile.Username, profile.Name, profile.Age, string(profile.Gender), profile.Bio, categories); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT user_id, username, name, age, gender, bio, categories, created_at, updated_at
FROM users
WHERE user_id = $1
`, userID)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return profile, nil
}

func (r *UserRepo) UpdateName(ctx context.Context, userID, name string) error {
	return r.updateColumn(ctx, userID, "name", name)
}

func (r *UserRepo) UpdateAge(ctx context.Context, userID string, age int) error {
	return r.updateColumn(ctx, userID, "age", age)
}

func (r *UserRepo) UpdateGender(ctx context.Context, userID string, gender enums.Gender) error {
	return r.updateColumn(ctx, userID, "gender", string(gender))
}

func (r *UserRepo) UpdateBio(ctx context.Context, userID, bio string) error {
	return r.updateColumn(ctx, userID, "bio", bio)
}

func (r *UserRepo) UpdateCategories(ctx context.Context, userID string, categories []enums.Category) error {
	payload, err := marshalCategories(categories)
	if err != nil {
		return err
	}

	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	result, err := r.pool.Exec(ctx, `
UPDATE users SET categories = $2::jsonb, updated_at = NOW() WHERE user_id = $1
`, userID, payload)
	if err != nil {
		return fmt.Errorf("update user categories: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// RandomCandidate picks one profile uniformly at random among users that are
// not the viewer, carry the requested category, and have no like or dislike
// edge from the viewer yet. Returns nil when the candidate set is empty.
func (r *UserRepo) RandomCandidate(ctx context.Context, viewerID string, category enums.Category) (*model.Profile, error) {
	if strings.TrimSpace(viewerID) == "" || !category.Valid() {
		return nil, fmt.Errorf("invalid candidate lookup payload")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	categoryJSON, err := marshalCategories([]enums.Category{category})
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
SELECT user_id, username, name, age, gender, bio, categories, created_at, updated_at
FROM users
WHERE user_id != $1
	AND categories @> $2::jsonb
	AND NOT EXISTS (
		SELECT 1 FROM likes WHERE from_user_id = $1 AND to_user_id = users.user_id
	)
	AND NOT EXISTS (
		SELECT 1 FROM dislikes WHERE from_user_id = $1 AND to_user_id = users.user_id
	)
ORDER BY RANDOM()
LIMIT 1
`, viewerID, categoryJSON)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pick random candidate: %w", err)
	}
	return profile, nil
}

func (r *UserRepo) updateColumn(ctx context.Context, userID, column string, value any) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	query := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = NOW() WHERE user_id = $1`, column)
	result, err := r.pool.Exec(ctx, query, userID, value)
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var (
		profile    model.Profile
		gender     string
		categories []byte
	)
	if err := row.Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Name,
		&profile.Age,
		&gender,
		&profile.Bio,
		&categories,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}

	profile.Gender = enums.Gender(gender)
	if len(categories) > 0 {
		if err := json.Unmarshal(categories, &profile.Categories); err != nil {
			return nil, fmt.Errorf("decode user categories: %w", err)
		}
	}
	return &profile, nil
}

func marshalCategories(categories []enums.Category) (string, error) {
	if categories == nil {
		categories = []enums.Category{}
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return "", fmt.Errorf("encode categories: %w", err)
	}
	return string(raw), nil
}
