package states

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/nlypage/intele/storage"
	"github.com/redis/go-redis/v9"
)

// Storage keeps per-user input states for the intele input manager, so a
// half-finished edit survives a bot restart.
type Storage struct {
	redis *redis.Client
}

var _ storage.StateStorage = (*Storage)(nil)

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(userID int64, state string, expiration time.Duration) error {
	return s.redis.Set(context.Background(), strconv.FormatInt(userID, 10), state, expiration).Err()
}

func (s *Storage) Get(userID int64) (string, error) {
	state, err := s.redis.Get(context.Background(), strconv.FormatInt(userID, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return state, err
}

func (s *Storage) Delete(userID int64) {
	s.redis.Del(context.Background(), strconv.FormatInt(userID, 10))
}
