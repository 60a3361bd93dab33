package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-safe-keeper/internal/config"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
)

// ClientStorages groups the client's local cache.
type ClientStorages struct {
	Sessions SessionStore
	Pairings PairingRepository
	Cursors  CursorRepository

	db    *DB
	redis *RedisSessionStore
}

// NewClientStorages opens the cache database named by cfg.DB.DSN, applies
// migrations and selects the session backend: Redis when an address is
// configured, the database otherwise. sealer is required for Redis only.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, sealer SessionSealer, log *logger.Logger) (*ClientStorages, error) {
	var (
		db  *DB
		err error
	)
	if IsPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting local cache: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	storages := &ClientStorages{
		Sessions: NewSessionRepository(db),
		Pairings: NewPairingRepository(db),
		Cursors:  NewCursorRepository(db),
		db:       db,
	}

	if cfg.Redis.Address != "" {
		rs, err := NewRedisSessionStore(ctx, cfg.Redis, sealer)
		if err != nil {
			db.Close()
			return nil, err
		}
		storages.Sessions = rs
		storages.redis = rs
		log.Info().Str("func", "NewClientStorages").Str("redis", cfg.Redis.Address).Msg("session keys cached in redis")
	}

	return storages, nil
}

// Close releases the database and, if used, the Redis client.
func (s *ClientStorages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}
