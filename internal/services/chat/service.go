package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivankudzin/datebot/internal/domain/model"
)

var (
	ErrValidation = errors.New("validation error")
	// ErrNotMatched: the pair has no mutual like.
	ErrNotMatched = errors.New("users are not matched")
	// ErrChatBlocked: either party ended a chat with the other at some point.
	// The block is permanent and survives re-matching.
	ErrChatBlocked = errors.New("chat is blocked for this pair")
)

type MatchStore interface {
	HasMutualLike(ctx context.Context, a, b string) (bool, error)
}

type BlockStore interface {
	Block(ctx context.Context, a, b string) error
	IsBlocked(ctx context.Context, a, b string) (bool, error)
}

type MessageStore interface {
	Save(ctx context.Context, fromID, toID, text string) error
	ListBetween(ctx context.Context, a, b string, limit int) ([]model.Message, error)
}

// Service is the chat gate: it decides whether a pair may exchange messages
// and owns the blocked-pair relation.
type Service struct {
	matches  MatchStore
	blocks   BlockStore
	messages MessageStore
}

type Dependencies struct {
	Matches  MatchStore
	Blocks   BlockStore
	Messages MessageStore
}

func NewService(deps Dependencies) *Service {
	return &Service{
		matches:  deps.Matches,
		blocks:   deps.Blocks,
		messages: deps.Messages,
	}
}

// CanChat returns nil when the pair is matched and unblocked, otherwise the
// specific denial reason so the caller can render the right message.
func (s *Service) CanChat(ctx context.Context, a, b string) error {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" || a == b {
		return ErrValidation
	}
	if s.matches == nil || s.blocks == nil {
		return fmt.Errorf("chat dependencies are not configured")
	}

	blocked, err := s.blocks.IsBlocked(ctx, a, b)
	if err != nil {
		return fmt.Errorf("check chat block: %w", err)
	}
	if blocked {
		return ErrChatBlocked
	}

	matched, err := s.matches.HasMutualLike(ctx, a, b)
	if err != nil {
		return fmt.Errorf("check mutual like: %w", err)
	}
	if !matched {
		return ErrNotMatched
	}
	return nil
}

// EndChat blocks the pair. One party triggers it, the effect is mutual and
// permanent; repeating it is a safe no-op.
func (s *Service) EndChat(ctx context.Context, userID, partnerID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(partnerID) == "" || userID == partnerID {
		return ErrValidation
	}
	if s.blocks == nil {
		return fmt.Errorf("chat dependencies are not configured")
	}

	if err := s.blocks.Block(ctx, userID, partnerID); err != nil {
		return fmt.Errorf("block chat pair: %w", err)
	}
	return nil
}

// SendMessage persists a message after re-checking the gate, so a block
// created by the counterpart mid-conversation is observed on the next send.
func (s *Service) SendMessage(ctx context.Context, fromID, toID, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	if err := s.CanChat(ctx, fromID, toID); err != nil {
		return err
	}
	if s.messages == nil {
		return fmt.Errorf("chat dependencies are not configured")
	}

	if err := s.messages.Save(ctx, fromID, toID, text); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

// History returns the latest messages between the pair in chronological
// order.
func (s *Service) History(ctx context.Context, a, b string, limit int) ([]model.Message, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return nil, ErrValidation
	}
	if s.messages == nil {
		return nil, fmt.Errorf("chat dependencies are not configured")
	}
	return s.messages.ListBetween(ctx, a, b, limit)
}
