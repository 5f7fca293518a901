package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*StateRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStateRepo(client, ttl), mr
}

func TestStateRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t, 0)
	ctx := context.Background()

	state := model.SessionState{
		State: enums.StateViewingProfile,
		Context: model.SessionContext{
			Viewing: &model.ViewingProfile{ProfileID: "u42", Category: enums.CategoryLove},
		},
	}
	if err := repo.Set(ctx, "u1", state); err != nil {
		t.Fatalf("set state: %v", err)
	}

	got, found, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if !found {
		t.Fatal("expected stored state")
	}
	if got.State != enums.StateViewingProfile {
		t.Fatalf("unexpected state: %s", got.State)
	}
	if got.Context.Viewing == nil || got.Context.Viewing.ProfileID != "u42" {
		t.Fatalf("unexpected viewing context: %+v", got.Context.Viewing)
	}
	if got.Context.Signup != nil || got.Context.Chat != nil || got.Context.Editing != nil {
		t.Fatalf("expected single context variant, got %+v", got.Context)
	}
}

func TestSetReplacesContextWholesale(t *testing.T) {
	repo, _ := newTestRepo(t, 0)
	ctx := context.Background()

	if err := repo.Set(ctx, "u1", model.SessionState{
		State: enums.StateChooseCategories,
		Context: model.SessionContext{
			Signup: &model.SignupDraft{Name: "Alice", Age: 25, Categories: []enums.Category{enums.CategoryLove}},
		},
	}); err != nil {
		t.Fatalf("set signup state: %v", err)
	}

	if err := repo.Set(ctx, "u1", model.SessionState{
		State:   enums.StateInChat,
		Context: model.SessionContext{Chat: &model.ChatPartner{PartnerID: "u2"}},
	}); err != nil {
		t.Fatalf("set chat state: %v", err)
	}

	got, found, err := repo.Get(ctx, "u1")
	if err != nil || !found {
		t.Fatalf("get state: found=%v err=%v", found, err)
	}
	if got.Context.Signup != nil {
		t.Fatalf("signup draft leaked into chat state: %+v", got.Context.Signup)
	}
	if got.Context.Chat == nil || got.Context.Chat.PartnerID != "u2" {
		t.Fatalf("unexpected chat context: %+v", got.Context.Chat)
	}
}

func TestGetMissingState(t *testing.T) {
	repo, _ := newTestRepo(t, 0)

	_, found, err := repo.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no stored state")
	}
}

func TestClearRemovesState(t *testing.T) {
	repo, _ := newTestRepo(t, 0)
	ctx := context.Background()

	if err := repo.Set(ctx, "u1", model.SessionState{State: enums.StateMainMenu}); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := repo.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear state: %v", err)
	}

	_, found, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if found {
		t.Fatal("expected state to be gone")
	}
}

func TestStateTTL(t *testing.T) {
	repo, mr := newTestRepo(t, time.Minute)
	ctx := context.Background()

	if err := repo.Set(ctx, "u1", model.SessionState{State: enums.StateMainMenu}); err != nil {
		t.Fatalf("set state: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, found, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if found {
		t.Fatal("expected state to expire")
	}
}
