package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gasolinera/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisCarritoStore keeps each session's open cart in Redis under a TTL, so
// abandoned carts expire on their own and a server restart does not lose
// sales in progress.
type RedisCarritoStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCarritoStore(client *redis.Client, ttl time.Duration) *RedisCarritoStore {
	return &RedisCarritoStore{client: client, ttl: ttl}
}

func carritoKey(sessionID string) string { return "carrito:" + sessionID }

func (s *RedisCarritoStore) Get(ctx context.Context, sessionID string) (*model.Carrito, error) {
	raw, err := s.client.Get(ctx, carritoKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &model.Carrito{MetodoPago: "Efectivo"}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leyendo carrito: %w", err)
	}
	var c model.Carrito
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("carrito corrupto en sesión %s: %w", sessionID, err)
	}
	return &c, nil
}

func (s *RedisCarritoStore) Save(ctx context.Context, sessionID string, c *model.Carrito) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, carritoKey(sessionID), raw, s.ttl).Err()
}

func (s *RedisCarritoStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, carritoKey(sessionID)).Err()
}
