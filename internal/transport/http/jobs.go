package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type jobResponse struct {
	ID          string    `json:"id"`
	FoodbankID  string    `json:"foodbank_id"`
	EventID     string    `json:"event_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	DatePosted  time.Time `json:"date_posted"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status"`
}

func toJobResponse(job domain.Job) jobResponse {
	return jobResponse{
		ID:          job.ID,
		FoodbankID:  job.FoodbankID,
		EventID:     job.EventID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Category:    job.Category,
		DatePosted:  job.DatePosted,
		Deadline:    job.Deadline,
		Status:      string(job.Status),
	}
}

// JobManager is the minimal interface needed by the job endpoints.
type JobManager interface {
	Create(ctx context.Context, in app.CreateJobInput) (domain.Job, error)
	Update(ctx context.Context, jobID string, in app.UpdateJobInput) (domain.Job, error)
	Get(ctx context.Context, jobID string) (domain.Job, error)
	List(ctx context.Context, filter app.JobFilter) ([]domain.Job, error)
}

// HandleJobs serves the /jobs collection.
func HandleJobs(svc JobManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseJobPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch {
		case id == "" && r.Method == http.MethodPost:
			var req struct {
				FoodbankID  string    `json:"foodbank_id"`
				EventID     string    `json:"event_id"`
				Title       string    `json:"title"`
				Description string    `json:"description"`
				Location    string    `json:"location"`
				Category    string    `json:"category"`
				Deadline    time.Time `json:"deadline"`
				Status      string    `json:"status"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			if req.FoodbankID == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "foodbank_id is required")
				return
			}
			job, err := svc.Create(r.Context(), app.CreateJobInput{
				FoodbankID:  req.FoodbankID,
				EventID:     req.EventID,
				Title:       req.Title,
				Description: req.Description,
				Location:    req.Location,
				Category:    req.Category,
				Deadline:    req.Deadline,
				Status:      domain.JobStatus(req.Status),
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toJobResponse(job))

		case id == "" && r.Method == http.MethodGet:
			q := r.URL.Query()
			jobs, err := svc.List(r.Context(), app.JobFilter{
				FoodbankID: q.Get("foodbank_id"),
				EventID:    q.Get("event_id"),
				EventOnly:  q.Get("event_only") == "true",
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			out := make([]jobResponse, 0, len(jobs))
			for _, job := range jobs {
				out = append(out, toJobResponse(job))
			}
			writeJSON(w, http.StatusOK, map[string]any{"jobs": out})

		case id != "" && r.Method == http.MethodGet:
			job, err := svc.Get(r.Context(), id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toJobResponse(job))

		case id != "" && r.Method == http.MethodPut:
			var req struct {
				Title       string    `json:"title"`
				Description string    `json:"description"`
				Location    string    `json:"location"`
				Category    string    `json:"category"`
				Deadline    time.Time `json:"deadline"`
				Status      string    `json:"status"`
			}
			if !decodeBody(w, r, &req) {
				return
			}
			job, err := svc.Update(r.Context(), id, app.UpdateJobInput{
				Title:       req.Title,
				Description: req.Description,
				Location:    req.Location,
				Category:    req.Category,
				Deadline:    req.Deadline,
				Status:      domain.JobStatus(req.Status),
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toJobResponse(job))

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// parseJobPath splits /jobs[/{id}].
func parseJobPath(path string) (id string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] != "jobs" {
		return "", false
	}
	switch len(parts) {
	case 1:
		return "", true
	case 2:
		if parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	return "", false
}
