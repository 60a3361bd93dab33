package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-safe-keeper/internal/logger"
	"github.com/MKhiriev/go-safe-keeper/models"
)

const pairingsTable = "pairings"

var pairingColumns = []string{"address", "vault_id", "cap_id", "safe_id", "newly_available", "updated_at"}

type pairingRepository struct {
	*DB
}

// NewPairingRepository returns a [PairingRepository] backed by db.
func NewPairingRepository(db *DB) PairingRepository {
	return &pairingRepository{DB: db}
}

func (r *pairingRepository) Get(ctx context.Context, address models.Address, vaultID models.ObjectID) (models.Pairing, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(pairingColumns...).
		From(pairingsTable).
		Where(sq.Eq{"address": address.String(), "vault_id": vaultID.String()}).
		ToSql()
	if err != nil {
		return models.Pairing{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var p models.Pairing
	err = r.withRetry(ctx, func(ctx context.Context) error {
		return scanPairing(r.QueryRowContext(ctx, query, args...), &p)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Pairing{}, ErrPairingNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "pairingRepository.Get").Msg("error selecting pairing")
		return models.Pairing{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return p, nil
}

// Save upserts the pairing keyed by (address, vault_id).
func (r *pairingRepository) Save(ctx context.Context, p models.Pairing) error {
	log := logger.FromContext(ctx)

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}

	query, args, err := r.builder().
		Insert(pairingsTable).
		Columns(pairingColumns...).
		Values(p.Address.String(), p.VaultID.String(), p.CapID.String(), p.SafeID.String(), p.NewlyAvailable, p.UpdatedAt.UnixMilli()).
		Suffix(`ON CONFLICT (address, vault_id) DO UPDATE SET
			cap_id = excluded.cap_id,
			safe_id = excluded.safe_id,
			newly_available = excluded.newly_available,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "pairingRepository.Save").
			Str("address", p.Address.String()).
			Str("vault_id", p.VaultID.String()).
			Msg("error saving pairing")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *pairingRepository) Delete(ctx context.Context, address models.Address, vaultID models.ObjectID) error {
	return r.delete(ctx, "pairingRepository.Delete", sq.Eq{"address": address.String(), "vault_id": vaultID.String()})
}

// DeleteBySafe evicts every pairing routed through safeID, whoever holds it.
func (r *pairingRepository) DeleteBySafe(ctx context.Context, safeID models.ObjectID) error {
	if safeID.IsZero() {
		return nil
	}
	return r.delete(ctx, "pairingRepository.DeleteBySafe", sq.Eq{"safe_id": safeID.String()})
}

func (r *pairingRepository) delete(ctx context.Context, fn string, where sq.Eq) error {
	query, args, err := r.builder().Delete(pairingsTable).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func(ctx context.Context) error {
		_, err := r.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error deleting pairings")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *pairingRepository) List(ctx context.Context, filter PairingFilter) ([]models.Pairing, error) {
	log := logger.FromContext(ctx)

	q := r.builder().Select(pairingColumns...).From(pairingsTable).OrderBy("updated_at DESC", "vault_id")
	if !filter.Address.IsZero() {
		q = q.Where(sq.Eq{"address": filter.Address.String()})
	}
	if !filter.SafeID.IsZero() {
		q = q.Where(sq.Eq{"safe_id": filter.SafeID.String()})
	}
	if filter.OnlyEscrowed {
		q = q.Where(sq.NotEq{"safe_id": ""})
	}
	if filter.OnlyNew {
		q = q.Where(sq.Eq{"newly_available": true})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var pairings []models.Pairing
	err = r.withRetry(ctx, func(ctx context.Context) error {
		pairings = pairings[:0]
		rows, err := r.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p models.Pairing
			if err = scanPairing(rows, &p); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			pairings = append(pairings, p)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "pairingRepository.List").Msg("error listing pairings")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return pairings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPairing(row rowScanner, p *models.Pairing) error {
	var (
		address, vaultID, capID, safeID string
		updatedAt                       int64
	)
	if err := row.Scan(&address, &vaultID, &capID, &safeID, &p.NewlyAvailable, &updatedAt); err != nil {
		return err
	}
	p.Address = models.Address(address)
	p.VaultID = models.ObjectID(vaultID)
	p.CapID = models.ObjectID(capID)
	p.SafeID = models.ObjectID(safeID)
	p.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return nil
}
