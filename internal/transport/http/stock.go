package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type stockItem struct {
	FoodName string `json:"food_name"`
	Quantity int    `json:"quantity"`
}

func toItemInputs(items []stockItem) []app.StockItemInput {
	out := make([]app.StockItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, app.StockItemInput{FoodName: item.FoodName, Quantity: item.Quantity})
	}
	return out
}

func toStockItems(entries []domain.StockEntry) []stockItem {
	out := make([]stockItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, stockItem{FoodName: e.FoodName, Quantity: e.Quantity})
	}
	return out
}

type ledgerResponse struct {
	FoodbankID  string      `json:"foodbank_id"`
	Stock       []stockItem `json:"stock"`
	LastUpdated time.Time   `json:"last_updated"`
}

func toLedgerResponse(ledger domain.StockLedger) ledgerResponse {
	return ledgerResponse{
		FoodbankID:  ledger.FoodbankID,
		Stock:       toStockItems(ledger.Entries),
		LastUpdated: ledger.LastUpdated,
	}
}

// StockManager is the minimal interface needed by the stock endpoints.
type StockManager interface {
	Restock(ctx context.Context, foodbankID string, items []app.StockItemInput) (domain.StockLedger, error)
	Withdraw(ctx context.Context, foodbankID string, items []app.StockItemInput) (domain.StockLedger, error)
	Query(ctx context.Context, foodbankID string) (domain.StockLedger, error)
}

// HandleFoodbankStock serves /foodbanks/{id}/stock and
// /foodbanks/{id}/stock/withdraw.
func HandleFoodbankStock(svc StockManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodbankID, action, ok := parseStockPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			ledger, err := svc.Query(r.Context(), foodbankID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toLedgerResponse(ledger))

		case action == "" && r.Method == http.MethodPost:
			items, ok := decodeStockItems(w, r)
			if !ok {
				return
			}
			ledger, err := svc.Restock(r.Context(), foodbankID, items)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toLedgerResponse(ledger))

		case action == "withdraw" && r.Method == http.MethodPost:
			items, ok := decodeStockItems(w, r)
			if !ok {
				return
			}
			ledger, err := svc.Withdraw(r.Context(), foodbankID, items)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toLedgerResponse(ledger))

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func decodeStockItems(w http.ResponseWriter, r *http.Request) ([]app.StockItemInput, bool) {
	var req struct {
		Items []stockItem `json:"items"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return nil, false
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "items are required")
		return nil, false
	}
	return toItemInputs(req.Items), true
}

// parseStockPath splits /foodbanks/{id}/stock[/{action}].
func parseStockPath(path string) (foodbankID, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 {
		return "", "", false
	}
	if parts[0] != "foodbanks" || parts[1] == "" || parts[2] != "stock" {
		return "", "", false
	}
	if len(parts) == 4 {
		if parts[3] == "" {
			return "", "", false
		}
		return parts[1], parts[3], true
	}
	return parts[1], "", true
}
