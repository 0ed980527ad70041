package http

import (
	"context"
	"net/http"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type foodItemResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"food_name"`
	Category       string     `json:"category"`
	Unit           string     `json:"unit"`
	Description    string     `json:"description,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	AddedOn        time.Time  `json:"added_on"`
}

func toFoodItemResponse(item domain.FoodItem) foodItemResponse {
	return foodItemResponse{
		ID:             item.ID,
		Name:           item.Name,
		Category:       item.Category,
		Unit:           item.Unit,
		Description:    item.Description,
		ExpirationDate: item.ExpirationDate,
		AddedOn:        item.AddedOn,
	}
}

// CatalogManager is the minimal interface needed by the food item
// endpoints.
type CatalogManager interface {
	AddFoodItem(ctx context.Context, in app.AddFoodItemInput) (domain.FoodItem, error)
	ListFoodItems(ctx context.Context) ([]domain.FoodItem, error)
}

// HandleFoodItems serves the /food-items collection.
func HandleFoodItems(svc CatalogManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req struct {
				Name           string     `json:"food_name"`
				Category       string     `json:"category"`
				Unit           string     `json:"unit"`
				Description    string     `json:"description"`
				ExpirationDate *time.Time `json:"expiration_date"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			if req.Name == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "food_name is required")
				return
			}
			item, err := svc.AddFoodItem(r.Context(), app.AddFoodItemInput{
				Name:           req.Name,
				Category:       req.Category,
				Unit:           req.Unit,
				Description:    req.Description,
				ExpirationDate: req.ExpirationDate,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toFoodItemResponse(item))

		case http.MethodGet:
			items, err := svc.ListFoodItems(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]foodItemResponse, 0, len(items))
			for _, item := range items {
				out = append(out, toFoodItemResponse(item))
			}
			writeJSON(w, http.StatusOK, map[string]any{"food_items": out})

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
