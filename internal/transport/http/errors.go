package http

import (
	"encoding/json"
	"net/http"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

const (
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a core error to an HTTP status: missing things are
// 404, state and inventory conflicts are 409, bad input is 400.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, codeInternalError
	msg := "internal error"

	switch err {
	case domain.ErrNoSuchLedger, domain.ErrItemNotFound, domain.ErrAppointmentNotFound,
		domain.ErrJobNotFound, domain.ErrApplicationNotFound:
		status, code, msg = http.StatusNotFound, codeNotFound, err.Error()
	case domain.ErrInsufficientStock:
		status, code, msg = http.StatusConflict, "insufficient_stock", err.Error()
	case domain.ErrInsufficientPoolStock:
		status, code, msg = http.StatusConflict, "insufficient_event_stock", err.Error()
	case domain.ErrSlotUnavailable:
		status, code, msg = http.StatusConflict, "slot_unavailable", err.Error()
	case domain.ErrInvalidTransition:
		status, code, msg = http.StatusConflict, "invalid_transition", err.Error()
	case domain.ErrAlreadyTerminal:
		status, code, msg = http.StatusConflict, "already_terminal", err.Error()
	case domain.ErrAlreadyDecided:
		status, code, msg = http.StatusConflict, "already_decided", err.Error()
	case domain.ErrDuplicateApplication:
		status, code, msg = http.StatusConflict, "duplicate_application", err.Error()
	case domain.ErrDuplicateFoodItem:
		status, code, msg = http.StatusConflict, "duplicate_food_item", err.Error()
	case domain.ErrUnknownFoodItem:
		status, code, msg = http.StatusBadRequest, "unknown_food_item", err.Error()
	case domain.ErrInvalidQuantity:
		status, code, msg = http.StatusBadRequest, "invalid_quantity", err.Error()
	case domain.ErrInvalidInterval:
		status, code, msg = http.StatusBadRequest, "invalid_interval", err.Error()
	case domain.ErrInvalidDecision:
		status, code, msg = http.StatusBadRequest, "invalid_decision", err.Error()
	case domain.ErrInvalidTarget:
		status, code, msg = http.StatusBadRequest, "invalid_target", err.Error()
	case domain.ErrJobTitleRequired:
		status, code, msg = http.StatusBadRequest, "job_title_required", err.Error()
	case domain.ErrDeadlineRequired:
		status, code, msg = http.StatusBadRequest, "deadline_required", err.Error()
	case domain.ErrInvalidID:
		status, code, msg = http.StatusBadRequest, "invalid_id", err.Error()
	}

	writeError(w, status, code, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
