package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
)

type stubStore struct {
	added        []model.Notification
	list         []model.Notification
	unread       int
	markAllCalls []string
	markedIDs    []int64
	listErr      error
}

func (s *stubStore) Add(_ context.Context, n model.Notification) error {
	s.added = append(s.added, n)
	return nil
}

func (s *stubStore) List(_ context.Context, _ string, unreadOnly bool) ([]model.Notification, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if !unreadOnly {
		return s.list, nil
	}
	var unread []model.Notification
	for _, n := range s.list {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (s *stubStore) UnreadCount(context.Context, string) (int, error) {
	return s.unread, nil
}

func (s *stubStore) MarkRead(_ context.Context, id int64) error {
	s.markedIDs = append(s.markedIDs, id)
	return nil
}

func (s *stubStore) MarkAllRead(_ context.Context, userID string) error {
	s.markAllCalls = append(s.markAllCalls, userID)
	return nil
}

func TestNotifyLikeAddressesLikedUser(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	target := model.Profile{UserID: "b", Name: "Маша", Username: "masha", Age: 24}
	actor := model.Profile{UserID: "a", Name: "Иван", Username: "ivan", Age: 27}
	if err := svc.NotifyLike(context.Background(), target, actor); err != nil {
		t.Fatalf("NotifyLike: %v", err)
	}

	if len(store.added) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(store.added))
	}
	n := store.added[0]
	if n.UserID != "b" || n.FromUserID != "a" {
		t.Fatalf("like notification misaddressed: %+v", n)
	}
	if n.Type != enums.NotificationTypeLike {
		t.Fatalf("unexpected type %q", n.Type)
	}
	if !strings.Contains(n.Message, "Иван") || !strings.Contains(n.Message, "27") {
		t.Fatalf("message must carry the liker's name and age: %q", n.Message)
	}
}

func TestNotifyMatchWritesTwoRows(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	a := model.Profile{UserID: "a", Name: "Иван", Username: "ivan"}
	b := model.Profile{UserID: "b", Name: "Маша", Username: "masha"}
	if err := svc.NotifyMatch(context.Background(), a, b); err != nil {
		t.Fatalf("NotifyMatch: %v", err)
	}

	if len(store.added) != 2 {
		t.Fatalf("expected exactly 2 notifications, got %d", len(store.added))
	}
	first, second := store.added[0], store.added[1]
	if first.UserID != "a" || first.FromUserID != "b" {
		t.Fatalf("first row misaddressed: %+v", first)
	}
	if second.UserID != "b" || second.FromUserID != "a" {
		t.Fatalf("second row misaddressed: %+v", second)
	}
	if first.Type != enums.NotificationTypeMatch || second.Type != enums.NotificationTypeMatch {
		t.Fatal("both rows must be match notifications")
	}
	if !strings.Contains(first.Message, "Маша") || !strings.Contains(second.Message, "Иван") {
		t.Fatal("each row must reference the other participant")
	}
}

func TestViewMarksEverythingRead(t *testing.T) {
	store := &stubStore{list: []model.Notification{
		{ID: 2, UserID: "a", Type: enums.NotificationTypeMatch},
		{ID: 1, UserID: "a", Type: enums.NotificationTypeLike},
	}}
	svc := NewService(store)

	items, err := svc.View(context.Background(), "a")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(items))
	}
	if len(store.markAllCalls) != 1 || store.markAllCalls[0] != "a" {
		t.Fatalf("expected a single MarkAllRead for %q, got %v", "a", store.markAllCalls)
	}
}

func TestViewEmptySkipsMarking(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store)

	items, err := svc.View(context.Background(), "a")
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %d", len(items))
	}
	if len(store.markAllCalls) != 0 {
		t.Fatal("empty view must not touch read flags")
	}
}

func TestListUnread(t *testing.T) {
	store := &stubStore{list: []model.Notification{
		{ID: 2, UserID: "a", Read: false},
		{ID: 1, UserID: "a", Read: true},
	}}
	svc := NewService(store)

	items, err := svc.ListUnread(context.Background(), "a")
	if err != nil {
		t.Fatalf("ListUnread: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("unexpected unread list: %+v", items)
	}
}

func TestUnreadCount(t *testing.T) {
	svc := NewService(&stubStore{unread: 3})

	count, err := svc.UnreadCount(context.Background(), "a")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}

func TestMarkReadValidation(t *testing.T) {
	svc := NewService(&stubStore{})

	if err := svc.MarkRead(context.Background(), 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), 7); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
}

func TestEmptyUserIDRejected(t *testing.T) {
	svc := NewService(&stubStore{})

	if _, err := svc.View(context.Background(), " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("View: expected ErrValidation, got %v", err)
	}
	if _, err := svc.UnreadCount(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("UnreadCount: expected ErrValidation, got %v", err)
	}
}
