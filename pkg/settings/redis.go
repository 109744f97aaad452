package settings

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/uofr/moodle-format-topcoll/pkg/cache"
	"github.com/uofr/moodle-format-topcoll/pkg/core/course"
	"github.com/uofr/moodle-format-topcoll/pkg/errors"
)

// RedisStore keeps settings as JSON values named by the keyer.
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

func (s *RedisStore) Get(ctx context.Context, courseID string) (course.Settings, bool, error) {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return course.Settings{}, false, err
	}
	data, err := s.client.Get(ctx, s.keyer.SettingsKey(courseID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return course.Settings{}, false, nil
	}
	if err != nil {
		return course.Settings{}, false, fmt.Errorf("redis get settings: %w", err)
	}
	out := course.DefaultSettings()
	if err := json.Unmarshal(data, &out); err != nil {
		return course.Settings{}, false, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode settings for course %s", courseID)
	}
	return out, true, nil
}

func (s *RedisStore) Put(ctx context.Context, courseID string, st course.Settings) error {
	if err := errors.ValidateCourseID(courseID); err != nil {
		return err
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.client.Set(ctx, s.keyer.SettingsKey(courseID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set settings: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
