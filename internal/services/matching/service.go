package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	pgrepo "github.com/ivankudzin/datebot/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	// ErrVerdictConflict rejects a like over a standing dislike and vice
	// versa. A verdict, once recorded, is immutable in this flow.
	ErrVerdictConflict = errors.New("verdict already recorded for this pair")
)

type InteractionStore interface {
	AddLike(ctx context.Context, fromID, toID string) (pgrepo.LikeInsert, error)
	AddDislike(ctx context.Context, fromID, toID string) (bool, error)
	MatchedIDs(ctx context.Context, userID string) ([]string, error)
}

type ProfileStore interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	RandomCandidate(ctx context.Context, viewerID string, category enums.Category) (*model.Profile, error)
}

type Notifier interface {
	NotifyLike(ctx context.Context, target, actor model.Profile) error
	NotifyMatch(ctx context.Context, a, b model.Profile) error
}

type Service struct {
	interactions InteractionStore
	profiles     ProfileStore
	notifier     Notifier
}

type Dependencies struct {
	Interactions InteractionStore
	Profiles     ProfileStore
	Notifier     Notifier
}

func NewService(deps Dependencies) *Service {
	return &Service{
		interactions: deps.Interactions,
		profiles:     deps.Profiles,
		notifier:     deps.Notifier,
	}
}

type LikeResult struct {
	// Matched reports a mutual like. This is the synchronous feedback to the
	// acting user; both participants additionally receive a match
	// notification.
	Matched bool
	// Duplicate marks an idempotent repeat of an earlier like. No
	// notifications are emitted for repeats.
	Duplicate bool
}

// RecordLike stores a like edge from -> to and runs match detection. The
// liked user is notified of the like; on a mutual like both users are
// notified of the match.
func (s *Service) RecordLike(ctx context.Context, fromID, toID string) (LikeResult, error) {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" || fromID == toID {
		return LikeResult{}, ErrValidation
	}
	if s.interactions == nil || s.profiles == nil || s.notifier == nil {
		return LikeResult{}, fmt.Errorf("matching dependencies are not configured")
	}

	inserted, err := s.interactions.AddLike(ctx, fromID, toID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrVerdictConflict) {
			return LikeResult{}, ErrVerdictConflict
		}
		return LikeResult{}, fmt.Errorf("record like: %w", err)
	}

	if !inserted.Inserted {
		return LikeResult{Matched: inserted.Mutual, Duplicate: true}, nil
	}

	actor, err := s.profiles.Get(ctx, fromID)
	if err != nil {
		return LikeResult{}, fmt.Errorf("load liker profile: %w", err)
	}
	target, err := s.profiles.Get(ctx, toID)
	if err != nil {
		return LikeResult{}, fmt.Errorf("load liked profile: %w", err)
	}

	if err := s.notifier.NotifyLike(ctx, *target, *actor); err != nil {
		return LikeResult{}, fmt.Errorf("enqueue like notification: %w", err)
	}

	if inserted.Mutual {
		if err := s.notifier.NotifyMatch(ctx, *actor, *target); err != nil {
			return LikeResult{}, fmt.Errorf("enqueue match notifications: %w", err)
		}
		return LikeResult{Matched: true}, nil
	}

	return LikeResult{}, nil
}

// RecordDislike stores a dislike edge. No match side effects; a repeat is a
// silent no-op.
func (s *Service) RecordDislike(ctx context.Context, fromID, toID string) error {
	if strings.TrimSpace(fromID) == "" || strings.TrimSpace(toID) == "" || fromID == toID {
		return ErrValidation
	}
	if s.interactions == nil {
		return fmt.Errorf("matching dependencies are not configured")
	}

	if _, err := s.interactions.AddDislike(ctx, fromID, toID); err != nil {
		if errors.Is(err, pgrepo.ErrVerdictConflict) {
			return ErrVerdictConflict
		}
		return fmt.Errorf("record dislike: %w", err)
	}
	return nil
}

// NextCandidate picks a random unseen profile in the category. A nil profile
// means the category is exhausted for this viewer, which is a normal
// condition, not an error.
func (s *Service) NextCandidate(ctx context.Context, viewerID string, category enums.Category) (*model.Profile, error) {
	if strings.TrimSpace(viewerID) == "" || !category.Valid() {
		return nil, ErrValidation
	}
	if s.profiles == nil {
		return nil, fmt.Errorf("matching dependencies are not configured")
	}
	return s.profiles.RandomCandidate(ctx, viewerID, category)
}

// Matches resolves the user's mutual likes to profiles. Ids whose profile is
// gone are skipped.
func (s *Service) Matches(ctx context.Context, userID string) ([]model.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.interactions == nil || s.profiles == nil {
		return nil, fmt.Errorf("matching dependencies are not configured")
	}

	ids, err := s.interactions.MatchedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	items := make([]model.Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := s.profiles.Get(ctx, id)
		if err != nil {
			if errors.Is(err, pgrepo.ErrUserNotFound) {
				continue
			}
			return nil, fmt.Errorf("load match profile: %w", err)
		}
		items = append(items, *profile)
	}
	return items, nil
}
