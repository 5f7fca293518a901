package profiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	pgrepo "github.com/ivankudzin/datebot/internal/repo/postgres"
)

type stubStore struct {
	profiles map[string]model.Profile
	created  []model.Profile
	updates  []string
	err      error
}

func newStubStore() *stubStore {
	return &stubStore{profiles: make(map[string]model.Profile)}
}

func (s *stubStore) Exists(_ context.Context, userID string) (bool, error) {
	_, ok := s.profiles[userID]
	return ok, s.err
}

func (s *stubStore) Create(_ context.Context, profile model.Profile) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, profile)
	s.profiles[profile.UserID] = profile
	return nil
}

func (s *stubStore) Get(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, pgrepo.ErrUserNotFound
	}
	return &p, nil
}

func (s *stubStore) update(userID, field string) error {
	if _, ok := s.profiles[userID]; !ok {
		return pgrepo.ErrUserNotFound
	}
	s.updates = append(s.updates, field)
	return nil
}

func (s *stubStore) UpdateName(_ context.Context, userID, _ string) error {
	return s.update(userID, "name")
}

func (s *stubStore) UpdateAge(_ context.Context, userID string, _ int) error {
	return s.update(userID, "age")
}

func (s *stubStore) UpdateGender(_ context.Context, userID string, _ enums.Gender) error {
	return s.update(userID, "gender")
}

func (s *stubStore) UpdateBio(_ context.Context, userID, _ string) error {
	return s.update(userID, "bio")
}

func (s *stubStore) UpdateCategories(_ context.Context, userID string, _ []enums.Category) error {
	return s.update(userID, "categories")
}

func validProfile(userID string) model.Profile {
	return model.Profile{
		UserID:     userID,
		Username:   userID + "_tg",
		Name:       "Иван",
		Age:        27,
		Gender:     enums.GenderMale,
		Bio:        "люблю горы",
		Categories: []enums.Category{enums.CategoryLove},
	}
}

func TestCreateStampsTimestamps(t *testing.T) {
	store := newStubStore()
	svc := NewService(store)
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if err := svc.Create(context.Background(), validProfile("a")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(store.created))
	}
	created := store.created[0]
	if !created.CreatedAt.Equal(fixed) || !created.UpdatedAt.Equal(fixed) {
		t.Fatalf("timestamps not stamped: %+v", created)
	}
}

func TestCreateRejectsIncompleteProfile(t *testing.T) {
	svc := NewService(newStubStore())

	cases := []struct {
		name   string
		mutate func(p *model.Profile)
	}{
		{"empty user id", func(p *model.Profile) { p.UserID = "" }},
		{"empty name", func(p *model.Profile) { p.Name = " " }},
		{"zero age", func(p *model.Profile) { p.Age = 0 }},
		{"invalid gender", func(p *model.Profile) { p.Gender = "alien" }},
		{"no categories", func(p *model.Profile) { p.Categories = nil }},
		{"unknown category", func(p *model.Profile) { p.Categories = []enums.Category{"unknown"} }},
	}
	for _, tc := range cases {
		p := validProfile("a")
		tc.mutate(&p)
		if err := svc.Create(context.Background(), p); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", tc.name, err)
		}
	}
}

func TestGetMapsNotFound(t *testing.T) {
	svc := NewService(newStubStore())

	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExists(t *testing.T) {
	store := newStubStore()
	store.profiles["a"] = validProfile("a")
	svc := NewService(store)

	ok, err := svc.Exists(context.Background(), "a")
	if err != nil || !ok {
		t.Fatalf("Exists(a) = %v, %v", ok, err)
	}
	ok, err = svc.Exists(context.Background(), "b")
	if err != nil || ok {
		t.Fatalf("Exists(b) = %v, %v", ok, err)
	}
}

func TestSettersMapNotFound(t *testing.T) {
	svc := NewService(newStubStore())
	ctx := context.Background()

	if err := svc.SetName(ctx, "ghost", "Иван"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetName: expected ErrNotFound, got %v", err)
	}
	if err := svc.SetCategories(ctx, "ghost", []enums.Category{enums.CategoryHobby}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetCategories: expected ErrNotFound, got %v", err)
	}
}

func TestSettersValidate(t *testing.T) {
	svc := NewService(newStubStore())
	ctx := context.Background()

	if err := svc.SetName(ctx, "a", " "); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetName: expected ErrValidation, got %v", err)
	}
	if err := svc.SetAge(ctx, "a", -1); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetAge: expected ErrValidation, got %v", err)
	}
	if err := svc.SetGender(ctx, "a", "alien"); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetGender: expected ErrValidation, got %v", err)
	}
	if err := svc.SetCategories(ctx, "a", nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("SetCategories: expected ErrValidation, got %v", err)
	}
}

func TestSettersTouchStore(t *testing.T) {
	store := newStubStore()
	store.profiles["a"] = validProfile("a")
	svc := NewService(store)
	ctx := context.Background()

	if err := svc.SetName(ctx, "a", "Пётр"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := svc.SetAge(ctx, "a", 30); err != nil {
		t.Fatalf("SetAge: %v", err)
	}
	if err := svc.SetGender(ctx, "a", enums.GenderFemale); err != nil {
		t.Fatalf("SetGender: %v", err)
	}
	if err := svc.SetBio(ctx, "a", "новое био"); err != nil {
		t.Fatalf("SetBio: %v", err)
	}
	if err := svc.SetCategories(ctx, "a", []enums.Category{enums.CategoryFriendship}); err != nil {
		t.Fatalf("SetCategories: %v", err)
	}
	want := []string{"name", "age", "gender", "bio", "categories"}
	if len(store.updates) != len(want) {
		t.Fatalf("expected %d updates, got %v", len(want), store.updates)
	}
	for i, field := range want {
		if store.updates[i] != field {
			t.Fatalf("update %d = %q, want %q", i, store.updates[i], field)
		}
	}
}
