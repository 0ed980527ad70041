package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) CreateFoodItem(ctx context.Context, item domain.FoodItem) error {
	const stmt = `
INSERT INTO food_items (id, name, category, unit, description, expiration_date, added_on)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, stmt,
		item.ID,
		item.Name,
		item.Category,
		item.Unit,
		item.Description,
		item.ExpirationDate,
		item.AddedOn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateFoodItem
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create food item: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListFoodItems(ctx context.Context) ([]domain.FoodItem, error) {
	const q = `
SELECT id, name, category, unit, description, expiration_date, added_on
FROM food_items
ORDER BY added_on ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	defer rows.Close()

	var items []domain.FoodItem
	for rows.Next() {
		var item domain.FoodItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Unit,
			&item.Description,
			&item.ExpirationDate,
			&item.AddedOn,
		); err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate food items: %w", rows.Err())
	}
	return items, nil
}
