package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type StockRepository struct {
	pool *pgxpool.Pool
}

func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

func (r *StockRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *StockRepository) FoodItemExists(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM food_items WHERE name = $1)`
	var exists bool
	if err := queryRow(ctx, r.pool, q, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check food item: %w", err)
	}
	return exists, nil
}

func (r *StockRepository) GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error) {
	return getLedgerForUpdate(ctx, r.pool, foodbankID)
}

func (r *StockRepository) GetLedger(ctx context.Context, foodbankID string) (*domain.StockLedger, error) {
	return getLedger(ctx, r.pool, foodbankID, false)
}

func (r *StockRepository) SaveLedger(ctx context.Context, ledger domain.StockLedger) error {
	return saveLedger(ctx, r.pool, ledger)
}
