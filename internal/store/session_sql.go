package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-safe-keeper/internal/crypto"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type sessionRepository struct {
	*DB
}

// NewSessionRepository returns a [SessionStore] persisted in the
// session_keys table. Keys are stored CBOR-encoded.
func NewSessionRepository(db *DB) SessionStore {
	return &sessionRepository{DB: db}
}

func (r *sessionRepository) Get(ctx context.Context, address models.Address, scope string) (models.SessionKey, error) {
	query, args, err := r.builder().
		Select("payload").
		From("session_keys").
		Where(sq.Eq{"address": address.String(), "scope": scope}).
		ToSql()
	if err != nil {
		return models.SessionKey{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionKey{}, ErrSessionNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionRepository.Get").Msg("error selecting session key")
		return models.SessionKey{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var key models.SessionKey
	if err = crypto.Unmarshal(payload, &key); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionRepository.Get").Msg("corrupt session key payload")
		return models.SessionKey{}, ErrSessionNotFound
	}

	return key, nil
}

func (r *sessionRepository) Put(ctx context.Context, key models.SessionKey) error {
	payload, err := crypto.Marshal(key)
	if err != nil {
		return fmt.Errorf("error encoding session key: %w", err)
	}

	query, args, err := r.builder().
		Insert("session_keys").
		Columns("address", "scope", "payload", "expires_at").
		Values(key.Address.String(), key.Scope, payload, key.ExpiresAt().UnixMilli()).
		Suffix("ON CONFLICT (address, scope) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionRepository.Put").Msg("error saving session key")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, address models.Address, scope string) error {
	query, args, err := r.builder().
		Delete("session_keys").
		Where(sq.Eq{"address": address.String(), "scope": scope}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionRepository.Delete").Msg("error deleting session key")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
