package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "safekeeper:session:"

// RedisSessionStore keeps session keys in Redis with a TTL matching the
// key's remaining lifetime, so expired keys disappear on their own. Values
// are sealed, so a shared Redis never holds a usable session private key.
type RedisSessionStore struct {
	client *redis.Client
	sealer SessionSealer
	now    func() time.Time
}

// NewRedisSessionStore connects to cfg.Address and pings it.
func NewRedisSessionStore(ctx context.Context, cfg config.ClientRedis, sealer SessionSealer) (*RedisSessionStore, error) {
	if sealer == nil {
		return nil, ErrSessionSealerRequired
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	return newRedisSessionStore(client, sealer), nil
}

func newRedisSessionStore(client *redis.Client, sealer SessionSealer) *RedisSessionStore {
	return &RedisSessionStore{client: client, sealer: sealer, now: time.Now}
}

func sessionRedisKey(address models.Address, scope string) string {
	return sessionKeyPrefix + scope + ":" + address.String()
}

func (s *RedisSessionStore) Get(ctx context.Context, address models.Address, scope string) (models.SessionKey, error) {
	raw, err := s.client.Get(ctx, sessionRedisKey(address, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SessionKey{}, ErrSessionNotFound
	}
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("error reading session key: %w", err)
	}

	payload, err := s.sealer.Open(raw)
	if err != nil {
		// sealed by another identity, or tampered with
		logger.FromContext(ctx).Warn().Err(err).Str("func", "RedisSessionStore.Get").Msg("cannot open session key payload")
		return models.SessionKey{}, ErrSessionNotFound
	}

	var key models.SessionKey
	if err = crypto.Unmarshal(payload, &key); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "RedisSessionStore.Get").Msg("corrupt session key payload")
		return models.SessionKey{}, ErrSessionNotFound
	}
	return key, nil
}

// Put stores key until it expires. A key that is already expired is not
// stored.
func (s *RedisSessionStore) Put(ctx context.Context, key models.SessionKey) error {
	ttl := key.ExpiresAt().Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	payload, err := crypto.Marshal(key)
	if err != nil {
		return fmt.Errorf("error encoding session key: %w", err)
	}
	sealed, err := s.sealer.Seal(payload)
	if err != nil {
		return fmt.Errorf("error sealing session key: %w", err)
	}
	if err = s.client.Set(ctx, sessionRedisKey(key.Address, key.Scope), sealed, ttl).Err(); err != nil {
		return fmt.Errorf("error writing session key: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, address models.Address, scope string) error {
	return s.client.Del(ctx, sessionRedisKey(address, scope)).Err()
}

// Close releases the Redis connection pool.
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}
