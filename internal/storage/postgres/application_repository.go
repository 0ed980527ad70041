package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ApplicationRepository) CreateApplication(ctx context.Context, application domain.Application) error {
	const stmt = `
INSERT INTO applications (id, volunteer_id, target_kind, event_id, foodbank_id, job_id, status, applied_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := exec(ctx, r.pool, stmt,
		application.ID,
		application.VolunteerID,
		application.Target.Kind,
		application.Target.EventID,
		application.Target.FoodbankID,
		application.Target.JobID,
		application.Status,
		application.AppliedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateApplication
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) GetApplicationForUpdate(ctx context.Context, id string) (domain.Application, error) {
	const q = `
SELECT id, volunteer_id, target_kind, event_id, foodbank_id, job_id, status, applied_at
FROM applications
WHERE id = $1
FOR UPDATE`

	application, err := scanApplication(queryRow(ctx, r.pool, q, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Application{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Application{}, domain.ErrApplicationNotFound
		}
		return domain.Application{}, fmt.Errorf("get application: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepository) FindActiveByTarget(ctx context.Context, volunteerID string, target domain.ApplicationTarget) (*domain.Application, error) {
	const q = `
SELECT id, volunteer_id, target_kind, event_id, foodbank_id, job_id, status, applied_at
FROM applications
WHERE volunteer_id = $1
  AND target_kind = $2
  AND event_id = $3
  AND foodbank_id = $4
  AND job_id = $5
  AND status IN ('pending', 'approved')
LIMIT 1`

	application, err := scanApplication(queryRow(ctx, r.pool, q,
		volunteerID, target.Kind, target.EventID, target.FoodbankID, target.JobID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find application by target: %w", err)
	}
	return &application, nil
}

func (r *ApplicationRepository) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const stmt = `UPDATE applications SET status = $2 WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, id, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteApplication(ctx context.Context, id string) error {
	const stmt = `DELETE FROM applications WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) ListApplicationsByTarget(ctx context.Context, target domain.ApplicationTarget, status domain.ApplicationStatus) ([]domain.Application, error) {
	const q = `
SELECT id, volunteer_id, target_kind, event_id, foodbank_id, job_id, status, applied_at
FROM applications
WHERE target_kind = $1
  AND event_id = $2
  AND foodbank_id = $3
  AND job_id = $4
  AND ($5 = '' OR status = $5)
ORDER BY applied_at ASC`

	rows, err := query(ctx, r.pool, q, target.Kind, target.EventID, target.FoodbankID, target.JobID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		applications = append(applications, application)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate applications: %w", rows.Err())
	}
	return applications, nil
}

func scanApplication(row pgx.Row) (domain.Application, error) {
	var a domain.Application
	var kind, status string
	err := row.Scan(
		&a.ID,
		&a.VolunteerID,
		&kind,
		&a.Target.EventID,
		&a.Target.FoodbankID,
		&a.Target.JobID,
		&status,
		&a.AppliedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	a.Target.Kind = domain.TargetKind(kind)
	a.Status = domain.ApplicationStatus(status)
	return a, nil
}
