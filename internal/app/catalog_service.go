package app

import (
	"context"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type CatalogRepository interface {
	CreateFoodItem(ctx context.Context, item domain.FoodItem) error
	ListFoodItems(ctx context.Context) ([]domain.FoodItem, error)
}

// CatalogService manages the shared food item catalog stock entries are
// validated against.
type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type AddFoodItemInput struct {
	Name           string
	Category       string
	Unit           string
	Description    string
	ExpirationDate *time.Time
}

func (s *CatalogService) AddFoodItem(ctx context.Context, in AddFoodItemInput) (domain.FoodItem, error) {
	if in.Name == "" {
		return domain.FoodItem{}, domain.ErrUnknownFoodItem
	}

	item := domain.FoodItem{
		ID:             newID(),
		Name:           in.Name,
		Category:       in.Category,
		Unit:           in.Unit,
		Description:    in.Description,
		ExpirationDate: in.ExpirationDate,
		AddedOn:        s.clock.Now(),
	}

	if err := s.repo.CreateFoodItem(ctx, item); err != nil {
		return domain.FoodItem{}, err
	}
	return item, nil
}

func (s *CatalogService) ListFoodItems(ctx context.Context) ([]domain.FoodItem, error) {
	return s.repo.ListFoodItems(ctx)
}
