package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/ports"
)

// RedisGames stores live sessions in Redis with a TTL, so abandoned
// games expire on their own and multiple server instances can share
// one session space.
type RedisGames struct {
	pool *redis.Pool
	ttl  time.Duration
}

// DefaultGameTTL bounds how long an untouched game survives.
const DefaultGameTTL = 24 * time.Hour

func NewRedisGames(url string, ttl time.Duration) *RedisGames {
	if ttl <= 0 {
		ttl = DefaultGameTTL
	}
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 4 * time.Minute,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialURLContext(ctx, url)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return &RedisGames{pool: pool, ttl: ttl}
}

// Ping verifies connectivity; the server calls it once at startup.
func (s *RedisGames) Ping(ctx context.Context) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("PING")
	return err
}

func (s *RedisGames) Close() error { return s.pool.Close() }

func gameKey(id string) string { return "sudogen:game:" + id }

func (s *RedisGames) Put(ctx context.Context, g *domain.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("SET", gameKey(g.ID), data, "PX", s.ttl.Milliseconds())
	return err
}

func (s *RedisGames) Get(ctx context.Context, id string) (*domain.Game, error) {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	data, err := redis.Bytes(conn.Do("GET", gameKey(id)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var g domain.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *RedisGames) Delete(ctx context.Context, id string) error {
	conn, err := s.pool.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("DEL", gameKey(id))
	return err
}
