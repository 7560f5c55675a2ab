package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPersister keeps every customer key as a plain string value under
// exotic:<userID>:<key>. Values never expire; the store rewrites them in
// full on every mutation.
type RedisPersister struct {
	client *redis.Client
}

// NewRedisPersister connects and pings so a bad address fails at startup
// instead of on the first checkout.
func NewRedisPersister(ctx context.Context, addr, password string) (*RedisPersister, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("persist: redis ping failed: %w", err)
	}
	return &RedisPersister{client: client}, nil
}

func redisKey(userID uint, key Key) string {
	return fmt.Sprintf("exotic:%d:%s", userID, key)
}

func (p *RedisPersister) Save(ctx context.Context, userID uint, key Key, value []byte) error {
	if err := p.client.Set(ctx, redisKey(userID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("persist: save %s: %w", key, err)
	}
	return nil
}

func (p *RedisPersister) Load(ctx context.Context, userID uint, key Key) ([]byte, error) {
	val, err := p.client.Get(ctx, redisKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: load %s: %w", key, err)
	}
	return val, nil
}

func (p *RedisPersister) Delete(ctx context.Context, userID uint, key Key) error {
	if err := p.client.Del(ctx, redisKey(userID, key)).Err(); err != nil {
		return fmt.Errorf("persist: delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (p *RedisPersister) Close() error {
	return p.client.Close()
}
