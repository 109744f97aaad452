package togglestate

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/uofr/moodle-format-topcoll/pkg/cache"
)

// RedisStore keeps states as plain redis strings named by the keyer.
type RedisStore struct {
	client *redis.Client
	keyer  cache.Keyer
}

// NewRedisStore wraps an open client. A nil keyer uses the default scheme.
func NewRedisStore(client *redis.Client, keyer cache.Keyer) *RedisStore {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &RedisStore{client: client, keyer: keyer}
}

func (s *RedisStore) Get(ctx context.Context, courseID, userID string) (State, bool, error) {
	if err := validateIDs(courseID, userID); err != nil {
		return "", false, err
	}
	v, err := s.client.Get(ctx, s.keyer.ToggleKey(courseID, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get toggles: %w", err)
	}
	st := State(v)
	if err := st.Validate(); err != nil {
		return "", false, err
	}
	return st, true, nil
}

func (s *RedisStore) Set(ctx context.Context, courseID, userID string, st State) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.keyer.ToggleKey(courseID, userID), string(st), 0).Err(); err != nil {
		return fmt.Errorf("redis set toggles: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, courseID, userID string) error {
	if err := validateIDs(courseID, userID); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.keyer.ToggleKey(courseID, userID)).Err(); err != nil {
		return fmt.Errorf("redis delete toggles: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
