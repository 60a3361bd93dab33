package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

type cursorRepository struct {
	*DB
}

// NewCursorRepository returns a [CursorRepository] backed by db.
func NewCursorRepository(db *DB) CursorRepository {
	return &cursorRepository{DB: db}
}

func (r *cursorRepository) Get(ctx context.Context, kind models.EventKind) (models.Cursor, error) {
	query, args, err := r.builder().
		Select("seq").
		From("event_cursors").
		Where("kind = ?", string(kind)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var seq int64
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return r.QueryRowContext(ctx, query, args...).Scan(&seq)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "cursorRepository.Get").
			Str("kind", string(kind)).
			Msg("error reading cursor")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return models.Cursor(seq), nil
}

func (r *cursorRepository) Save(ctx context.Context, kind models.EventKind, cursor models.Cursor) error {
	query, args, err := r.builder().
		Insert("event_cursors").
		Columns("kind", "seq", "updated_at").
		Values(string(kind), int64(cursor), time.Now().UnixMilli()).
		Suffix("ON CONFLICT (kind) DO UPDATE SET seq = excluded.seq, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "cursorRepository.Save").
			Str("kind", string(kind)).
			Msg("error saving cursor")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *cursorRepository) All(ctx context.Context) (map[models.EventKind]models.Cursor, error) {
	query, args, err := r.builder().Select("kind", "seq").From("event_cursors").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	cursors := make(map[models.EventKind]models.Cursor)
	err = r.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				kind string
				seq  int64
			)
			if err = rows.Scan(&kind, &seq); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			cursors[models.EventKind(kind)] = models.Cursor(seq)
		}
		return rows.Err()
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "cursorRepository.All").Msg("error listing cursors")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return cursors, nil
}
