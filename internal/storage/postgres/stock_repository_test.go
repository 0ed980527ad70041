package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/testutil"
)

func TestStockRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewStockRepository(pool)

	t.Run("FoodItemExists", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		testutil.SeedFoodItem(t, ctx, pool, "apples", "kg")

		exists, err := repo.FoodItemExists(ctx, "apples")
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if !exists {
			t.Fatal("expected apples to exist")
		}

		exists, err = repo.FoodItemExists(ctx, "durian")
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists {
			t.Fatal("expected durian to be unknown")
		}
	})

	t.Run("save and get ledger", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		updated := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
		ledger := domain.StockLedger{
			FoodbankID: "fb-1",
			Entries: []domain.StockEntry{
				{FoodName: "apples", Quantity: 10},
				{FoodName: "bread", Quantity: 3},
			},
			LastUpdated: updated,
		}
		if err := repo.SaveLedger(ctx, ledger); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := repo.GetLedger(ctx, "fb-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got == nil {
			t.Fatal("expected a ledger")
		}
		if len(got.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got.Entries))
		}
		if got.Quantity("apples") != 10 || got.Quantity("bread") != 3 {
			t.Fatalf("unexpected quantities: %+v", got.Entries)
		}
		if !got.LastUpdated.Equal(updated) {
			t.Fatalf("expected last_updated %v, got %v", updated, got.LastUpdated)
		}
	})

	t.Run("save replaces the entry set wholesale", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		testutil.SeedStock(t, ctx, pool, "fb-1", "apples", 10)
		testutil.SeedStock(t, ctx, pool, "fb-1", "bread", 3)

		ledger, err := repo.GetLedgerForUpdate(ctx, "fb-1")
		if err != nil {
			t.Fatalf("get for update: %v", err)
		}
		if err := ledger.Remove("bread", 3); err != nil {
			t.Fatalf("remove: %v", err)
		}
		ledger.LastUpdated = time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
		if err := repo.SaveLedger(ctx, *ledger); err != nil {
			t.Fatalf("save: %v", err)
		}

		got, err := repo.GetLedger(ctx, "fb-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.Entries) != 1 || got.Quantity("apples") != 10 {
			t.Fatalf("expected only apples to survive, got %+v", got.Entries)
		}
	})

	t.Run("absent ledger reads as nil", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		got, err := repo.GetLedger(ctx, "fb-404")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil ledger, got %+v", got)
		}
	})

	t.Run("concurrent first writes both land", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		write := func(name string) error {
			return repo.WithTx(ctx, func(txCtx context.Context) error {
				ledger, err := repo.GetLedgerForUpdate(txCtx, "fb-1")
				if err != nil {
					return err
				}
				if ledger == nil {
					ledger = &domain.StockLedger{FoodbankID: "fb-1"}
				}
				ledger.Add(name, 5)
				ledger.LastUpdated = time.Now().UTC()
				return repo.SaveLedger(txCtx, *ledger)
			})
		}

		names := []string{"apples", "bread"}
		errs := make(chan error, len(names))
		var wg sync.WaitGroup
		for _, name := range names {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				errs <- write(name)
			}(name)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			if err != nil {
				t.Fatalf("concurrent write: %v", err)
			}
		}

		got, err := repo.GetLedger(ctx, "fb-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Quantity("apples") != 5 || got.Quantity("bread") != 5 {
			t.Fatalf("expected both first writes to survive, got %+v", got.Entries)
		}
	})

	t.Run("transaction rollback discards the save", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)
		testutil.SeedStock(t, ctx, pool, "fb-1", "apples", 10)

		wantErr := domain.ErrInsufficientStock
		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			ledger, err := repo.GetLedgerForUpdate(txCtx, "fb-1")
			if err != nil {
				return err
			}
			if err := ledger.Remove("apples", 4); err != nil {
				return err
			}
			if err := repo.SaveLedger(txCtx, *ledger); err != nil {
				return err
			}
			return wantErr
		})
		if err != wantErr {
			t.Fatalf("expected the injected error, got %v", err)
		}

		got, err := repo.GetLedger(ctx, "fb-1")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Quantity("apples") != 10 {
			t.Fatalf("expected rollback to keep 10 apples, got %d", got.Quantity("apples"))
		}
	})
}
