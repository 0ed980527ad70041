package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) CreateJob(ctx context.Context, job domain.Job) error {
	const stmt = `
INSERT INTO jobs (id, foodbank_id, event_id, title, description, location, category, date_posted, deadline, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, stmt,
		job.ID,
		job.FoodbankID,
		job.EventID,
		job.Title,
		job.Description,
		job.Location,
		job.Category,
		job.DatePosted,
		job.Deadline,
		job.Status,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepository) GetJob(ctx context.Context, id string) (domain.Job, error) {
	const q = `
SELECT id, foodbank_id, event_id, title, description, location, category, date_posted, deadline, status
FROM jobs
WHERE id = $1`

	job, err := scanJob(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Job{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Job{}, domain.ErrJobNotFound
		}
		return domain.Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (r *JobRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	const stmt = `
UPDATE jobs
SET title = $2, description = $3, location = $4, category = $5, deadline = $6, status = $7
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt,
		job.ID,
		job.Title,
		job.Description,
		job.Location,
		job.Category,
		job.Deadline,
		job.Status,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus) error {
	const stmt = `UPDATE jobs SET status = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) ListJobs(ctx context.Context, filter app.JobFilter) ([]domain.Job, error) {
	const q = `
SELECT id, foodbank_id, event_id, title, description, location, category, date_posted, deadline, status
FROM jobs
WHERE ($1 = '' OR foodbank_id = $1)
  AND ($2 = '' OR event_id = $2)
  AND (NOT $3 OR event_id <> '')
ORDER BY date_posted ASC`

	rows, err := r.pool.Query(ctx, q, filter.FoodbankID, filter.EventID, filter.EventOnly)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate jobs: %w", rows.Err())
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var job domain.Job
	var status string
	err := row.Scan(
		&job.ID,
		&job.FoodbankID,
		&job.EventID,
		&job.Title,
		&job.Description,
		&job.Location,
		&job.Category,
		&job.DatePosted,
		&job.Deadline,
		&status,
	)
	if err != nil {
		return domain.Job{}, err
	}
	job.Status = domain.JobStatus(status)
	return job, nil
}
