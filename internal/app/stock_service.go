package app

import (
	"context"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type StockRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FoodItemExists(ctx context.Context, name string) (bool, error)
	GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error)
	GetLedger(ctx context.Context, foodbankID string) (*domain.StockLedger, error)
	SaveLedger(ctx context.Context, ledger domain.StockLedger) error
}

// StockService mutates the main inventory of food banks. Every mutation on
// one food bank is serialized against other mutations on the same food
// bank by a row lock taken inside the repository transaction.
type StockService struct {
	repo  StockRepository
	clock clock.Clock
}

func NewStockService(repo StockRepository, clk clock.Clock) *StockService {
	return &StockService{
		repo:  repo,
		clock: clk,
	}
}

type StockItemInput struct {
	FoodName string
	Quantity int
}

func validateItems(items []StockItemInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidQuantity
	}
	for _, item := range items {
		if item.FoodName == "" {
			return domain.ErrUnknownFoodItem
		}
		if item.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

// Restock adds quantities to a food bank ledger, creating the ledger and
// entries as needed. Every name must exist in the food item catalog. The
// whole item list is applied in one transaction or not at all.
func (s *StockService) Restock(ctx context.Context, foodbankID string, items []StockItemInput) (domain.StockLedger, error) {
	if err := validateItems(items); err != nil {
		return domain.StockLedger{}, err
	}

	now := s.clock.Now()
	var result domain.StockLedger

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		for _, item := range items {
			known, err := s.repo.FoodItemExists(txCtx, item.FoodName)
			if err != nil {
				return err
			}
			if !known {
				return domain.ErrUnknownFoodItem
			}
		}

		ledger, err := s.repo.GetLedgerForUpdate(txCtx, foodbankID)
		if err != nil {
			return err
		}
		if ledger == nil {
			ledger = &domain.StockLedger{FoodbankID: foodbankID}
		}

		for _, item := range items {
			ledger.Add(item.FoodName, item.Quantity)
		}
		ledger.LastUpdated = now

		if err := s.repo.SaveLedger(txCtx, *ledger); err != nil {
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

// Withdraw removes quantities from a food bank ledger. It fails with
// ErrNoSuchLedger, ErrItemNotFound or ErrInsufficientStock and leaves the
// ledger untouched when any item cannot be fully withdrawn.
func (s *StockService) Withdraw(ctx context.Context, foodbankID string, items []StockItemInput) (domain.StockLedger, error) {
	if err := validateItems(items); err != nil {
		return domain.StockLedger{}, err
	}

	now := s.clock.Now()
	var result domain.StockLedger

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ledger, err := s.repo.GetLedgerForUpdate(txCtx, foodbankID)
		if err != nil {
			return err
		}
		if ledger == nil {
			return domain.ErrNoSuchLedger
		}

		for _, item := range items {
			if err := ledger.Remove(item.FoodName, item.Quantity); err != nil {
				return err
			}
		}
		ledger.LastUpdated = now

		if err := s.repo.SaveLedger(txCtx, *ledger); err != nil {
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

// Query returns a read-only snapshot of a food bank ledger.
func (s *StockService) Query(ctx context.Context, foodbankID string) (domain.StockLedger, error) {
	ledger, err := s.repo.GetLedger(ctx, foodbankID)
	if err != nil {
		return domain.StockLedger{}, err
	}
	if ledger == nil {
		return domain.StockLedger{}, domain.ErrNoSuchLedger
	}
	return *ledger, nil
}
