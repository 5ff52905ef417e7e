package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// redisKeyPrefix namespaces slot keys in a shared redis database.
const redisKeyPrefix = "promptdeck:slot:"

// Redis stores slots as plain string keys in redis.
type Redis struct {
	pool *redis.Pool
}

// NewRedis creates a redis-backed slot store dialing addr lazily.
func NewRedis(addr string) *Redis {
	return NewRedisWithPool(&redis.Pool{
		MaxIdle:     2,
		IdleTimeout: 4 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", addr,
				redis.DialConnectTimeout(5*time.Second),
				redis.DialReadTimeout(5*time.Second),
				redis.DialWriteTimeout(5*time.Second),
			)
		},
	})
}

// NewRedisWithPool wraps an existing pool.
func NewRedisWithPool(pool *redis.Pool) *Redis {
	return &Redis{pool: pool}
}

func (r *Redis) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if err := validateName(name); err != nil {
		return nil, false, err
	}
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("redis connect: %w", err)
	}
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", redisKeyPrefix+name))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", name, err)
	}
	return data, true, nil
}

func (r *Redis) Put(ctx context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Do("SET", redisKeyPrefix+name, data); err != nil {
		return fmt.Errorf("redis set %s: %w", name, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.pool.Close()
}
