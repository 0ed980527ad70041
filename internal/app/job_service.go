package app

import (
	"context"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type JobRepository interface {
	CreateJob(ctx context.Context, job domain.Job) error
	GetJob(ctx context.Context, id string) (domain.Job, error)
	UpdateJob(ctx context.Context, job domain.Job) error
	// UpdateJobStatus persists only the status field; concurrent readers
	// racing on the same flip are last-writer-wins.
	UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus) error
	ListJobs(ctx context.Context, filter JobFilter) ([]domain.Job, error)
}

type JobFilter struct {
	FoodbankID string
	EventID    string
	// EventOnly limits the listing to event-scoped postings.
	EventOnly bool
}

// JobService manages job postings. Status is recomputed against the
// deadline on every read; a flip to unavailable is persisted
// opportunistically and never reversed by recomputation.
type JobService struct {
	repo  JobRepository
	clock clock.Clock
}

func NewJobService(repo JobRepository, clk clock.Clock) *JobService {
	return &JobService{
		repo:  repo,
		clock: clk,
	}
}

type CreateJobInput struct {
	FoodbankID  string
	EventID     string
	Title       string
	Description string
	Location    string
	Category    string
	Deadline    time.Time
	Status      domain.JobStatus
}

func (s *JobService) Create(ctx context.Context, in CreateJobInput) (domain.Job, error) {
	if in.Title == "" {
		return domain.Job{}, domain.ErrJobTitleRequired
	}
	if in.Deadline.IsZero() {
		return domain.Job{}, domain.ErrDeadlineRequired
	}

	now := s.clock.Now()
	status := in.Status
	if status == "" {
		status = domain.JobStatusAvailable
	}

	job := domain.Job{
		ID:          newID(),
		FoodbankID:  in.FoodbankID,
		EventID:     in.EventID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		DatePosted:  now,
		Deadline:    in.Deadline,
		Status:      domain.DeriveJobStatus(status, in.Deadline, now),
	}

	if err := s.repo.CreateJob(ctx, job); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

type UpdateJobInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Deadline    time.Time
	Status      domain.JobStatus
}

func (s *JobService) Update(ctx context.Context, jobID string, in UpdateJobInput) (domain.Job, error) {
	if in.Deadline.IsZero() {
		return domain.Job{}, domain.ErrDeadlineRequired
	}

	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}

	if in.Title != "" {
		job.Title = in.Title
	}
	if in.Description != "" {
		job.Description = in.Description
	}
	if in.Location != "" {
		job.Location = in.Location
	}
	if in.Category != "" {
		job.Category = in.Category
	}
	job.Deadline = in.Deadline
	if in.Status != "" {
		job.Status = in.Status
	}
	job.Status = domain.DeriveJobStatus(job.Status, job.Deadline, s.clock.Now())

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		return domain.Job{}, err
	}
	return job, nil
}

// Get returns one job with its status derived from the deadline. A derived
// flip to unavailable is written back before returning.
func (s *JobService) Get(ctx context.Context, jobID string) (domain.Job, error) {
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return domain.Job{}, err
	}
	return s.refresh(ctx, job)
}

// List returns jobs matching the filter, each with a freshly derived
// status.
func (s *JobService) List(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	jobs, err := s.repo.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i], err = s.refresh(ctx, jobs[i])
		if err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

func (s *JobService) refresh(ctx context.Context, job domain.Job) (domain.Job, error) {
	derived := domain.DeriveJobStatus(job.Status, job.Deadline, s.clock.Now())
	if derived == job.Status {
		return job, nil
	}
	if err := s.repo.UpdateJobStatus(ctx, job.ID, derived); err != nil {
		return domain.Job{}, err
	}
	job.Status = derived
	return job, nil
}
