package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

// Ledger persistence shared by the stock, event pool and appointment
// repositories. A ledger is saved wholesale: the row is upserted and its
// entries replaced, so a transaction either lands the whole new state or
// none of it.

// lockForUpdate takes a transaction-scoped advisory lock on key. A row
// lock on stock_ledgers cannot serialize two transactions creating the
// same ledger, since there is no row to lock yet; the advisory lock
// covers that first-write window.
func lockForUpdate(ctx context.Context, pool *pgxpool.Pool, key string) error {
	if _, err := exec(ctx, pool, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	return nil
}

func getLedgerForUpdate(ctx context.Context, pool *pgxpool.Pool, foodbankID string) (*domain.StockLedger, error) {
	if err := lockForUpdate(ctx, pool, "ledger:"+foodbankID); err != nil {
		return nil, err
	}
	return getLedger(ctx, pool, foodbankID, true)
}

func getLedger(ctx context.Context, pool *pgxpool.Pool, foodbankID string, forUpdate bool) (*domain.StockLedger, error) {
	q := `SELECT foodbank_id, last_updated FROM stock_ledgers WHERE foodbank_id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	var ledger domain.StockLedger
	err := queryRow(ctx, pool, q, foodbankID).Scan(&ledger.FoodbankID, &ledger.LastUpdated)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger: %w", err)
	}

	const entriesQuery = `
SELECT food_name, quantity
FROM stock_entries
WHERE foodbank_id = $1
ORDER BY food_name ASC`

	rows, err := query(ctx, pool, entriesQuery, foodbankID)
	if err != nil {
		return nil, fmt.Errorf("get ledger entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.StockEntry
		if err := rows.Scan(&entry.FoodName, &entry.Quantity); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		ledger.Entries = append(ledger.Entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate ledger entries: %w", rows.Err())
	}
	return &ledger, nil
}

func saveLedger(ctx context.Context, pool *pgxpool.Pool, ledger domain.StockLedger) error {
	const upsert = `
INSERT INTO stock_ledgers (foodbank_id, last_updated)
VALUES ($1, $2)
ON CONFLICT (foodbank_id) DO UPDATE SET last_updated = EXCLUDED.last_updated`

	if _, err := exec(ctx, pool, upsert, ledger.FoodbankID, ledger.LastUpdated); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	if _, err := exec(ctx, pool, `DELETE FROM stock_entries WHERE foodbank_id = $1`, ledger.FoodbankID); err != nil {
		return fmt.Errorf("clear ledger entries: %w", err)
	}

	const insert = `
INSERT INTO stock_entries (foodbank_id, food_name, quantity)
VALUES ($1, $2, $3)`

	for _, entry := range ledger.Entries {
		if _, err := exec(ctx, pool, insert, ledger.FoodbankID, entry.FoodName, entry.Quantity); err != nil {
			return fmt.Errorf("save ledger entry: %w", err)
		}
	}
	return nil
}
