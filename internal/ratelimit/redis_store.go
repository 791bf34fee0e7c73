package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
)

var fixedWindowScript = rueidis.NewLuaScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisStore shares windows between instances through Redis. Each window
// is a counter key that expires with the window.
type RedisStore struct {
	client rueidis.Client
	prefix string
	now    func() time.Time
}

func NewRedisStore(client rueidis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "helpify:ratelimit"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	windowMs := window.Milliseconds()
	if windowMs <= 0 {
		return 0, fmt.Errorf("invalid rate limit window %s", window)
	}

	slot := r.now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, slot)

	return fixedWindowScript.Exec(
		ctx,
		r.client,
		[]string{redisKey},
		[]string{strconv.FormatInt(windowMs, 10)},
	).AsInt64()
}
