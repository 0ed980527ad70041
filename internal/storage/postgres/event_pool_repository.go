package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type EventPoolRepository struct {
	pool *pgxpool.Pool
}

func NewEventPoolRepository(pool *pgxpool.Pool) *EventPoolRepository {
	return &EventPoolRepository{pool: pool}
}

func (r *EventPoolRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventPoolRepository) GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error) {
	return getLedgerForUpdate(ctx, r.pool, foodbankID)
}

func (r *EventPoolRepository) SaveLedger(ctx context.Context, ledger domain.StockLedger) error {
	return saveLedger(ctx, r.pool, ledger)
}

func (r *EventPoolRepository) GetPoolForUpdate(ctx context.Context, eventID string) (*domain.EventPool, error) {
	// Same first-write race as ledgers: a pool row that does not exist
	// yet cannot be row-locked.
	if err := lockForUpdate(ctx, r.pool, "pool:"+eventID); err != nil {
		return nil, err
	}
	return r.getPool(ctx, eventID, true)
}

func (r *EventPoolRepository) GetPool(ctx context.Context, eventID string) (*domain.EventPool, error) {
	return r.getPool(ctx, eventID, false)
}

func (r *EventPoolRepository) getPool(ctx context.Context, eventID string, forUpdate bool) (*domain.EventPool, error) {
	q := `SELECT event_id, last_updated FROM event_pools WHERE event_id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	var pool domain.EventPool
	err := queryRow(ctx, r.pool, q, eventID).Scan(&pool.EventID, &pool.LastUpdated)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get event pool: %w", err)
	}

	const entriesQuery = `
SELECT food_name, quantity
FROM event_pool_entries
WHERE event_id = $1
ORDER BY food_name ASC`

	rows, err := query(ctx, r.pool, entriesQuery, eventID)
	if err != nil {
		return nil, fmt.Errorf("get pool entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.StockEntry
		if err := rows.Scan(&entry.FoodName, &entry.Quantity); err != nil {
			return nil, fmt.Errorf("scan pool entry: %w", err)
		}
		pool.Entries = append(pool.Entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate pool entries: %w", rows.Err())
	}
	return &pool, nil
}

func (r *EventPoolRepository) SavePool(ctx context.Context, pool domain.EventPool) error {
	const upsert = `
INSERT INTO event_pools (event_id, last_updated)
VALUES ($1, $2)
ON CONFLICT (event_id) DO UPDATE SET last_updated = EXCLUDED.last_updated`

	if _, err := exec(ctx, r.pool, upsert, pool.EventID, pool.LastUpdated); err != nil {
		return fmt.Errorf("save event pool: %w", err)
	}

	if _, err := exec(ctx, r.pool, `DELETE FROM event_pool_entries WHERE event_id = $1`, pool.EventID); err != nil {
		return fmt.Errorf("clear pool entries: %w", err)
	}

	const insert = `
INSERT INTO event_pool_entries (event_id, food_name, quantity)
VALUES ($1, $2, $3)`

	for _, entry := range pool.Entries {
		if _, err := exec(ctx, r.pool, insert, pool.EventID, entry.FoodName, entry.Quantity); err != nil {
			return fmt.Errorf("save pool entry: %w", err)
		}
	}
	return nil
}
