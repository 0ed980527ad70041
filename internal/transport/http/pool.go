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

type poolResponse struct {
	EventID     string      `json:"event_id"`
	Stock       []stockItem `json:"stock"`
	LastUpdated time.Time   `json:"last_updated"`
}

func toPoolResponse(pool domain.EventPool) poolResponse {
	return poolResponse{
		EventID:     pool.EventID,
		Stock:       toStockItems(pool.Entries),
		LastUpdated: pool.LastUpdated,
	}
}

// PoolManager is the minimal interface needed by the event pool endpoints.
type PoolManager interface {
	Allocate(ctx context.Context, eventID, foodbankID string, items []app.StockItemInput) (domain.EventPool, error)
	Consume(ctx context.Context, eventID string, items []app.StockItemInput) (domain.EventPool, error)
	ReturnToMain(ctx context.Context, eventID, foodbankID string) (domain.StockLedger, error)
	Query(ctx context.Context, eventID string) (domain.EventPool, error)
}

// HandleEventPool serves /events/{id}/pool and its allocate, consume and
// return actions.
func HandleEventPool(svc PoolManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, action, ok := parsePoolPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			pool, err := svc.Query(r.Context(), eventID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPoolResponse(pool))

		case action == "allocate" && r.Method == http.MethodPost:
			var req struct {
				FoodbankID string      `json:"foodbank_id"`
				Items      []stockItem `json:"items"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			if req.FoodbankID == "" || len(req.Items) == 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "foodbank_id and items are required")
				return
			}
			pool, err := svc.Allocate(r.Context(), eventID, req.FoodbankID, toItemInputs(req.Items))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPoolResponse(pool))

		case action == "consume" && r.Method == http.MethodPost:
			var req struct {
				Items []stockItem `json:"items"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			if len(req.Items) == 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "items are required")
				return
			}
			pool, err := svc.Consume(r.Context(), eventID, toItemInputs(req.Items))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toPoolResponse(pool))

		case action == "return" && r.Method == http.MethodPost:
			var req struct {
				FoodbankID string `json:"foodbank_id"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			if req.FoodbankID == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "foodbank_id is required")
				return
			}
			ledger, err := svc.ReturnToMain(r.Context(), eventID, req.FoodbankID)
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

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return false
	}
	return true
}

// parsePoolPath splits /events/{id}/pool[/{action}].
func parsePoolPath(path string) (eventID, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 {
		return "", "", false
	}
	if parts[0] != "events" || parts[1] == "" || parts[2] != "pool" {
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
