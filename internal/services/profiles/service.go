package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	pgrepo "github.com/ivankudzin/datebot/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

type Store interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, profile model.Profile) error
	Get(ctx context.Context, userID string) (*model.Profile, error)
	UpdateName(ctx context.Context, userID, name string) error
	UpdateAge(ctx context.Context, userID string, age int) error
	UpdateGender(ctx context.Context, userID string, gender enums.Gender) error
	UpdateBio(ctx context.Context, userID, bio string) error
	UpdateCategories(ctx context.Context, userID string, categories []enums.Category) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrValidation
	}
	if s.store == nil {
		return false, fmt.Errorf("profile store is nil")
	}
	return s.store.Exists(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("profile store is nil")
	}

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

// Create persists a fully assembled profile. All fields must already be
// validated by the registration flow; this check is the last line of defense.
func (s *Service) Create(ctx context.Context, profile model.Profile) error {
	if strings.TrimSpace(profile.UserID) == "" ||
		strings.TrimSpace(profile.Name) == "" ||
		profile.Age <= 0 ||
		!profile.Gender.Valid() ||
		len(profile.Categories) == 0 {
		return ErrValidation
	}
	for _, category := range profile.Categories {
		if !category.Valid() {
			return ErrValidation
		}
	}
	if s.store == nil {
		return fmt.Errorf("profile store is nil")
	}

	now := s.now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := s.store.Create(ctx, profile); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (s *Service) SetName(ctx context.Context, userID, name string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(name) == "" {
		return ErrValidation
	}
	return s.mapNotFound(s.store.UpdateName(ctx, userID, name))
}

func (s *Service) SetAge(ctx context.Context, userID string, age int) error {
	if strings.TrimSpace(userID) == "" || age <= 0 {
		return ErrValidation
	}
	return s.mapNotFound(s.store.UpdateAge(ctx, userID, age))
}

func (s *Service) SetGender(ctx context.Context, userID string, gender enums.Gender) error {
	if strings.TrimSpace(userID) == "" || !gender.Valid() {
		return ErrValidation
	}
	return s.mapNotFound(s.store.UpdateGender(ctx, userID, gender))
}

func (s *Service) SetBio(ctx context.Context, userID, bio string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(bio) == "" {
		return ErrValidation
	}
	return s.mapNotFound(s.store.UpdateBio(ctx, userID, bio))
}

func (s *Service) SetCategories(ctx context.Context, userID string, categories []enums.Category) error {
	if strings.TrimSpace(userID) == "" || len(categories) == 0 {
		return ErrValidation
	}
	for _, category := range categories {
		if !category.Valid() {
			return ErrValidation
		}
	}
	return s.mapNotFound(s.store.UpdateCategories(ctx, userID, categories))
}

func (s *Service) mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgrepo.ErrUserNotFound) {
		return ErrNotFound
	}
	return err
}
