package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type applicationResponse struct {
	ID          string    `json:"id"`
	VolunteerID string    `json:"volunteer_id"`
	Kind        string    `json:"kind"`
	EventID     string    `json:"event_id,omitempty"`
	FoodbankID  string    `json:"foodbank_id,omitempty"`
	JobID       string    `json:"job_id"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		VolunteerID: a.VolunteerID,
		Kind:        string(a.Target.Kind),
		EventID:     a.Target.EventID,
		FoodbankID:  a.Target.FoodbankID,
		JobID:       a.Target.JobID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}

// ApplicationTracker is the minimal interface needed by the application
// endpoints.
type ApplicationTracker interface {
	Apply(ctx context.Context, volunteerID string, target domain.ApplicationTarget) (domain.Application, error)
	Decide(ctx context.Context, applicationID string, decision domain.ApplicationStatus) (domain.Application, error)
	Cancel(ctx context.Context, volunteerID, applicationID string) error
	ListByTarget(ctx context.Context, target domain.ApplicationTarget, status domain.ApplicationStatus) ([]domain.Application, error)
}

// HandleApplications serves the /applications collection.
func HandleApplications(svc ApplicationTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, action, ok := parseApplicationPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case id == "" && r.Method == http.MethodPost:
			var req struct {
				VolunteerID string `json:"volunteer_id"`
				Kind        string `json:"kind"`
				EventID     string `json:"event_id"`
				FoodbankID  string `json:"foodbank_id"`
				JobID       string `json:"job_id"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			application, err := svc.Apply(r.Context(), req.VolunteerID, domain.ApplicationTarget{
				Kind:       domain.TargetKind(req.Kind),
				EventID:    req.EventID,
				FoodbankID: req.FoodbankID,
				JobID:      req.JobID,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toApplicationResponse(application))

		case id == "" && r.Method == http.MethodGet:
			q := r.URL.Query()
			target := domain.ApplicationTarget{
				Kind:       domain.TargetKind(q.Get("kind")),
				EventID:    q.Get("event_id"),
				FoodbankID: q.Get("foodbank_id"),
				JobID:      q.Get("job_id"),
			}
			applications, err := svc.ListByTarget(r.Context(), target, domain.ApplicationStatus(q.Get("status")))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]applicationResponse, 0, len(applications))
			for _, a := range applications {
				out = append(out, toApplicationResponse(a))
			}
			writeJSON(w, http.StatusOK, map[string]any{"applications": out})

		case id != "" && action == "decision" && r.Method == http.MethodPatch:
			var req struct {
				Status string `json:"status"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			application, err := svc.Decide(r.Context(), id, domain.ApplicationStatus(req.Status))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toApplicationResponse(application))

		case id != "" && action == "" && r.Method == http.MethodDelete:
			volunteerID := r.URL.Query().Get("volunteer_id")
			if volunteerID == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "volunteer_id is required")
				return
			}
			if err := svc.Cancel(r.Context(), volunteerID, id); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// parseApplicationPath splits /applications[/{id}[/{action}]].
func parseApplicationPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] != "applications" {
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
