package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	portsrepo "github.com/SscSPs/karangnongko_farm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSlotRepository keeps slots in the record_slots table.
type PgxSlotRepository struct {
	BaseRepository
}

func newPgxSlotRepository(db *pgxpool.Pool) *PgxSlotRepository {
	return &PgxSlotRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSlotRepository implements portsrepo.SlotStore
var _ portsrepo.SlotStore = (*PgxSlotRepository)(nil)

func (r *PgxSlotRepository) Load(ctx context.Context, slot string) ([]byte, error) {
	query := `SELECT payload FROM record_slots WHERE slot = $1;`
	var payload []byte
	err := r.Pool.QueryRow(ctx, query, slot).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlotAbsent
		}
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	return payload, nil
}

func (r *PgxSlotRepository) Save(ctx context.Context, slot string, payload []byte) error {
	query := `
        INSERT INTO record_slots (slot, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (slot) DO UPDATE SET
            payload = EXCLUDED.payload,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.Pool.Exec(ctx, query, slot, payload); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}

func (r *PgxSlotRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM record_slots WHERE slot = $1;`, slot); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", slot, err)
	}
	return nil
}
