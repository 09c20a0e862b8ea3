package runlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a SET NX based lock that keeps a notify tick for one
// (date, time bucket) pair from running twice, including across restarts
// and across bot instances sharing the redis.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// Acquire takes the lock for a date and bucket. Returns false if another
// run already holds it. The TTL bounds how long a crashed run can block
// the next schedule.
func (s *Storage) Acquire(ctx context.Context, date, bucket string, ttl time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, key(date, bucket), time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

// Release drops the lock early so a failed tick can be retried before the
// TTL expires.
func (s *Storage) Release(ctx context.Context, date, bucket string) error {
	return s.redis.Del(ctx, key(date, bucket)).Err()
}

func key(date, bucket string) string {
	return fmt.Sprintf("notify:run:%s:%s", date, bucket)
}
