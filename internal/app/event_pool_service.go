package app

import (
	"context"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type EventPoolRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error)
	SaveLedger(ctx context.Context, ledger domain.StockLedger) error
	GetPoolForUpdate(ctx context.Context, eventID string) (*domain.EventPool, error)
	GetPool(ctx context.Context, eventID string) (*domain.EventPool, error)
	SavePool(ctx context.Context, pool domain.EventPool) error
}

// EventPoolService moves stock between a food bank ledger and per-event
// pools. The sum of main ledger plus live pool quantities is conserved
// across Allocate and ReturnToMain.
type EventPoolService struct {
	repo  EventPoolRepository
	clock clock.Clock
}

func NewEventPoolService(repo EventPoolRepository, clk clock.Clock) *EventPoolService {
	return &EventPoolService{
		repo:  repo,
		clock: clk,
	}
}

// Allocate withdraws quantities from the food bank ledger and credits them
// to the event pool as a single logical unit. A withdrawal failure surfaces
// unchanged and leaves both sides untouched.
func (s *EventPoolService) Allocate(ctx context.Context, eventID, foodbankID string, items []StockItemInput) (domain.EventPool, error) {
	if err := validateItems(items); err != nil {
		return domain.EventPool{}, err
	}

	now := s.clock.Now()
	var result domain.EventPool

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ledger, err := s.repo.GetLedgerForUpdate(txCtx, foodbankID)
		if err != nil {
			return err
		}
		if ledger == nil {
			return domain.ErrNoSuchLedger
		}

		pool, err := s.repo.GetPoolForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if pool == nil {
			pool = &domain.EventPool{EventID: eventID}
		}

		for _, item := range items {
			if err := ledger.Remove(item.FoodName, item.Quantity); err != nil {
				return err
			}
			pool.Add(item.FoodName, item.Quantity)
		}
		ledger.LastUpdated = now
		pool.LastUpdated = now

		if err := s.repo.SaveLedger(txCtx, *ledger); err != nil {
			return err
		}
		if err := s.repo.SavePool(txCtx, *pool); err != nil {
			return err
		}
		result = *pool
		return nil
	})
	if err != nil {
		return domain.EventPool{}, err
	}
	return result, nil
}

// Consume removes quantities from the event pool without touching the main
// ledger. Consumption is a sink, not a transfer.
func (s *EventPoolService) Consume(ctx context.Context, eventID string, items []StockItemInput) (domain.EventPool, error) {
	if err := validateItems(items); err != nil {
		return domain.EventPool{}, err
	}

	now := s.clock.Now()
	var result domain.EventPool

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		pool, err := s.repo.GetPoolForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if pool == nil {
			return domain.ErrItemNotFound
		}

		for _, item := range items {
			if err := pool.Remove(item.FoodName, item.Quantity); err != nil {
				return err
			}
		}
		pool.LastUpdated = now

		if err := s.repo.SavePool(txCtx, *pool); err != nil {
			return err
		}
		result = *pool
		return nil
	})
	if err != nil {
		return domain.EventPool{}, err
	}
	return result, nil
}

// ReturnToMain credits every remaining pool entry back to the food bank
// ledger and clears the pool. Returning an empty or absent pool is a no-op.
func (s *EventPoolService) ReturnToMain(ctx context.Context, eventID, foodbankID string) (domain.StockLedger, error) {
	now := s.clock.Now()
	var result domain.StockLedger

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Same lock order as Allocate (ledger before pool), or two
		// concurrent transfers for the same pair can deadlock.
		ledger, err := s.repo.GetLedgerForUpdate(txCtx, foodbankID)
		if err != nil {
			return err
		}
		if ledger == nil {
			ledger = &domain.StockLedger{FoodbankID: foodbankID}
		}

		pool, err := s.repo.GetPoolForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}

		if pool == nil || len(pool.Entries) == 0 {
			result = *ledger
			return nil
		}

		for _, entry := range pool.Entries {
			ledger.Add(entry.FoodName, entry.Quantity)
		}
		pool.Entries = nil
		ledger.LastUpdated = now
		pool.LastUpdated = now

		if err := s.repo.SaveLedger(txCtx, *ledger); err != nil {
			return err
		}
		if err := s.repo.SavePool(txCtx, *pool); err != nil {
			return err
		}
		result = *ledger
		return nil
	})
	if err != nil {
		return domain.StockLedger{}, err
	}
	return result, nil
}

// Query returns a read-only snapshot of an event pool. An event that never
// had an allocation reads as an empty pool.
func (s *EventPoolService) Query(ctx context.Context, eventID string) (domain.EventPool, error) {
	pool, err := s.repo.GetPool(ctx, eventID)
	if err != nil {
		return domain.EventPool{}, err
	}
	if pool == nil {
		return domain.EventPool{EventID: eventID}, nil
	}
	return *pool, nil
}
