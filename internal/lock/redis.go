package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "lock:"

// releaseScript deletes the key only while it still holds our owner token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker takes locks with SET NX PX, so an expired lock disappears on its own.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
	}
}

func (that *RedisLocker) Acquire(ctx context.Context, key string, opts Options) (*Lease, error) {
	redisKey := redisKeyPrefix + key

	return acquire(ctx, key, opts, func(ctx context.Context, owner string) (*Lease, error) {
		acquired, err := that.client.SetNX(ctx, redisKey, owner, opts.Expire).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to set lock %s: %w", key, err)
		}

		if !acquired {
			return nil, nil //nolint: nilnil // held by someone else
		}

		return &Lease{
			Key:    key,
			Owner:  owner,
			Expiry: time.Now().Add(opts.Expire),
			release: func(ctx context.Context) error {
				deleted, err := releaseScript.Run(ctx, that.client, []string{redisKey}, owner).Int()
				if err != nil {
					return fmt.Errorf("failed to delete lock %s: %w", key, err)
				}

				if deleted == 0 {
					return fmt.Errorf("%w: %s", ErrLockLost, key)
				}

				return nil
			},
		}, nil
	})
}
