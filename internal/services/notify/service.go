package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type Store interface {
	Add(ctx context.Context, n model.Notification) error
	List(ctx context.Context, userID string, unreadOnly bool) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, notificationID int64) error
	MarkAllRead(ctx context.Context, userID string) error
}

// Service owns the per-user notification queue: like and match events,
// most recent first, with bulk read marking on full view.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// NotifyLike records a like event addressed to the liked user.
func (s *Service) NotifyLike(ctx context.Context, target, actor model.Profile) error {
	if strings.TrimSpace(target.UserID) == "" || strings.TrimSpace(actor.UserID) == "" {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("notification store is nil")
	}

	return s.store.Add(ctx, model.Notification{
		UserID:       target.UserID,
		FromUserID:   actor.UserID,
		FromName:     actor.Name,
		FromUsername: actor.Username,
		Type:         enums.NotificationTypeLike,
		Message:      fmt.Sprintf("%s (%d) лайкнул вашу анкету!", actor.Name, actor.Age),
	})
}

// NotifyMatch records a match event for both participants, each referencing
// the other.
func (s *Service) NotifyMatch(ctx context.Context, a, b model.Profile) error {
	if strings.TrimSpace(a.UserID) == "" || strings.TrimSpace(b.UserID) == "" {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("notification store is nil")
	}

	if err := s.store.Add(ctx, matchNotification(a, b)); err != nil {
		return err
	}
	return s.store.Add(ctx, matchNotification(b, a))
}

// View returns the full list, most recent first, and marks everything read —
// viewing the list in full is the bulk read trigger.
func (s *Service) View(ctx context.Context, userID string) ([]model.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("notification store is nil")
	}

	items, err := s.store.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := s.store.MarkAllRead(ctx, userID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Service) ListUnread(ctx context.Context, userID string) ([]model.Notification, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("notification store is nil")
	}
	return s.store.List(ctx, userID, true)
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, ErrValidation
	}
	if s.store == nil {
		return 0, fmt.Errorf("notification store is nil")
	}
	return s.store.UnreadCount(ctx, userID)
}

// MarkRead is the single-item alternate entry point.
func (s *Service) MarkRead(ctx context.Context, notificationID int64) error {
	if notificationID <= 0 {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("notification store is nil")
	}
	return s.store.MarkRead(ctx, notificationID)
}

func matchNotification(to, other model.Profile) model.Notification {
	return model.Notification{
		UserID:       to.UserID,
		FromUserID:   other.UserID,
		FromName:     other.Name,
		FromUsername: other.Username,
		Type:         enums.NotificationTypeMatch,
		Message:      fmt.Sprintf("💕 Взаимная симпатия с %s! @%s", other.Name, other.Username),
	}
}
