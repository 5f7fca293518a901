package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ivankudzin/datebot/internal/domain/model"
)

const statePrefix = "dialog_state:"

// StateRepo persists one SessionState per user. Set always overwrites the
// whole value, which is what keeps stale context from leaking between states.
type StateRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewStateRepo creates a repo. A non-positive ttl keeps states forever.
func NewStateRepo(client *goredis.Client, ttl time.Duration) *StateRepo {
	return &StateRepo{client: client, ttl: ttl}
}

func (r *StateRepo) Set(ctx context.Context, userID string, state model.SessionState) error {
	if strings.TrimSpace(userID) == "" || state.State == "" {
		return fmt.Errorf("invalid state payload")
	}
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode dialog state: %w", err)
	}

	if err := r.client.Set(ctx, stateKey(userID), raw, r.expiration()).Err(); err != nil {
		return fmt.Errorf("store dialog state: %w", err)
	}
	return nil
}

// Get returns the stored state. The second result is false when the user has
// no stored state yet.
func (r *StateRepo) Get(ctx context.Context, userID string) (model.SessionState, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return model.SessionState{}, false, fmt.Errorf("invalid user id")
	}
	if r.client == nil {
		return model.SessionState{}, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, stateKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return model.SessionState{}, false, nil
		}
		return model.SessionState{}, false, fmt.Errorf("load dialog state: %w", err)
	}

	var state model.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.SessionState{}, false, fmt.Errorf("decode dialog state: %w", err)
	}
	return state, true, nil
}

func (r *StateRepo) Clear(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("invalid user id")
	}
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	if err := r.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("clear dialog state: %w", err)
	}
	return nil
}

func (r *StateRepo) expiration() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	return r.ttl
}

func stateKey(userID string) string {
	return statePrefix + userID
}
