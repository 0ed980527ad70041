package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type appointmentResponse struct {
	ID             string      `json:"id"`
	IndividualID   string      `json:"individual_id"`
	FoodbankID     string      `json:"foodbank_id"`
	StartTime      time.Time   `json:"start_time"`
	EndTime        time.Time   `json:"end_time"`
	Description    string      `json:"description"`
	RequestedItems []stockItem `json:"product"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	LastUpdated    time.Time   `json:"last_updated"`
}

func toAppointmentResponse(appt domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:             appt.ID,
		IndividualID:   appt.IndividualID,
		FoodbankID:     appt.FoodbankID,
		StartTime:      appt.StartTime,
		EndTime:        appt.EndTime,
		Description:    appt.Description,
		RequestedItems: toStockItems(appt.RequestedItems),
		Status:         string(appt.Status),
		CreatedAt:      appt.CreatedAt,
		LastUpdated:    appt.LastUpdated,
	}
}

// AppointmentScheduler is the minimal interface needed by the appointment
// endpoints.
type AppointmentScheduler interface {
	Create(ctx context.Context, in app.CreateAppointmentInput) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, status domain.AppointmentStatus) (domain.Appointment, error)
	Reschedule(ctx context.Context, appointmentID string, newStart, newEnd time.Time) (domain.Appointment, error)
	Get(ctx context.Context, appointmentID string) (domain.Appointment, error)
	ListByFoodbank(ctx context.Context, foodbankID string, status domain.AppointmentStatus) ([]domain.Appointment, error)
}

// HandleAppointments serves the /appointments collection: create, get,
// list by food bank, status updates and rescheduling.
func HandleAppointments(svc AppointmentScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseAppointmentPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case id == "" && r.Method == http.MethodPost:
			handleCreateAppointment(svc, w, r)
		case id == "" && r.Method == http.MethodGet:
			handleListAppointments(svc, w, r)
		case id != "" && action == "" && r.Method == http.MethodGet:
			appt, err := svc.Get(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
		case id != "" && action == "status" && r.Method == http.MethodPatch:
			var req struct {
				Status string `json:"status"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			appt, err := svc.UpdateStatus(r.Context(), id, domain.AppointmentStatus(req.Status))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
		case id != "" && action == "reschedule" && r.Method == http.MethodPatch:
			var req struct {
				StartTime time.Time `json:"start_time"`
				EndTime   time.Time `json:"end_time"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			appt, err := svc.Reschedule(r.Context(), id, req.StartTime, req.EndTime)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func handleCreateAppointment(svc AppointmentScheduler, w http.ResponseWriter, r *http.Request) {
	var req struct {
		IndividualID string      `json:"individual_id"`
		FoodbankID   string      `json:"foodbank_id"`
		StartTime    time.Time   `json:"start_time"`
		EndTime      time.Time   `json:"end_time"`
		Description  string      `json:"description"`
		Product      []stockItem `json:"product"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IndividualID == "" || req.FoodbankID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "individual_id and foodbank_id are required")
		return
	}

	appt, err := svc.Create(r.Context(), app.CreateAppointmentInput{
		IndividualID:   req.IndividualID,
		FoodbankID:     req.FoodbankID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Description:    req.Description,
		RequestedItems: toItemInputs(req.Product),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
}

func handleListAppointments(svc AppointmentScheduler, w http.ResponseWriter, r *http.Request) {
	foodbankID := r.URL.Query().Get("foodbank_id")
	if foodbankID == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "foodbank_id is required")
		return
	}
	status := domain.AppointmentStatus(r.URL.Query().Get("status"))

	appts, err := svc.ListByFoodbank(r.Context(), foodbankID, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]appointmentResponse, 0, len(appts))
	for _, appt := range appts {
		out = append(out, toAppointmentResponse(appt))
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": out})
}

// parseAppointmentPath splits /appointments[/{id}[/{action}]].
func parseAppointmentPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] != "appointments" {
		return "", "", false
	}
	switch len(parts) {
	case 1:
		return "", "", true
	case 2:
		if parts[1] == "" {
			return "", "", false
		}
		return parts[1], "", true
	case 3:
		if parts[1] == "" || parts[2] == "" {
			return "", "", false
		}
		return parts[1], parts[2], true
	}
	return "", "", false
}
