package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// LockCalendar takes a transaction-scoped advisory lock on the food bank's
// calendar. Row locks cannot stop two transactions from inserting
// overlapping appointments after both passed the overlap check; the
// advisory lock closes that window.
func (r *AppointmentRepository) LockCalendar(ctx context.Context, foodbankID string) error {
	return lockForUpdate(ctx, r.pool, "calendar:"+foodbankID)
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, appt domain.Appointment) error {
	const stmt = `
INSERT INTO appointments (id, individual_id, foodbank_id, start_time, end_time, description, status, created_at, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := exec(ctx, r.pool, stmt,
		appt.ID,
		appt.IndividualID,
		appt.FoodbankID,
		appt.StartTime,
		appt.EndTime,
		appt.Description,
		appt.Status,
		appt.CreatedAt,
		appt.LastUpdated,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create appointment: %w", err)
	}

	const itemStmt = `
INSERT INTO appointment_items (appointment_id, food_name, quantity)
VALUES ($1, $2, $3)`

	for _, item := range appt.RequestedItems {
		if _, err := exec(ctx, r.pool, itemStmt, appt.ID, item.FoodName, item.Quantity); err != nil {
			return fmt.Errorf("create appointment item: %w", err)
		}
	}
	return nil
}

func (r *AppointmentRepository) GetAppointmentForUpdate(ctx context.Context, id string) (domain.Appointment, error) {
	return r.getAppointment(ctx, id, true)
}

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id string) (domain.Appointment, error) {
	return r.getAppointment(ctx, id, false)
}

func (r *AppointmentRepository) getAppointment(ctx context.Context, id string, forUpdate bool) (domain.Appointment, error) {
	q := `
SELECT id, individual_id, foodbank_id, start_time, end_time, description, status, created_at, last_updated
FROM appointments
WHERE id = $1`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	var appt domain.Appointment
	var status string
	err := queryRow(ctx, r.pool, q, id).Scan(
		&appt.ID,
		&appt.IndividualID,
		&appt.FoodbankID,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Description,
		&status,
		&appt.CreatedAt,
		&appt.LastUpdated,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Appointment{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Appointment{}, domain.ErrAppointmentNotFound
		}
		return domain.Appointment{}, fmt.Errorf("get appointment: %w", err)
	}
	appt.Status = domain.AppointmentStatus(status)

	items, err := r.loadItems(ctx, appt.ID)
	if err != nil {
		return domain.Appointment{}, err
	}
	appt.RequestedItems = items
	return appt, nil
}

func (r *AppointmentRepository) loadItems(ctx context.Context, appointmentID string) ([]domain.StockEntry, error) {
	const q = `
SELECT food_name, quantity
FROM appointment_items
WHERE appointment_id = $1
ORDER BY food_name ASC`

	rows, err := query(ctx, r.pool, q, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment items: %w", err)
	}
	defer rows.Close()

	var items []domain.StockEntry
	for rows.Next() {
		var item domain.StockEntry
		if err := rows.Scan(&item.FoodName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan appointment item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate appointment items: %w", rows.Err())
	}
	return items, nil
}

func (r *AppointmentRepository) UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus, at time.Time) error {
	const stmt = `UPDATE appointments SET status = $2, last_updated = $3 WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, id, status, at)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) UpdateAppointmentSlot(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus, at time.Time) error {
	const stmt = `
UPDATE appointments
SET start_time = $2, end_time = $3, status = $4, last_updated = $5
WHERE id = $1`

	tag, err := exec(ctx, r.pool, stmt, id, start, end, status, at)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update appointment slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) CountOverlapping(ctx context.Context, foodbankID string, start, end time.Time, excludeID string) (int, error) {
	const q = `
SELECT COUNT(*)
FROM appointments
WHERE foodbank_id = $1
  AND status <> 'cancelled'
  AND start_time < $3
  AND end_time > $2
  AND ($4 = '' OR id::text <> $4)`

	var count int
	if err := queryRow(ctx, r.pool, q, foodbankID, start, end, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) ListAppointments(ctx context.Context, foodbankID string, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	const q = `
SELECT id, individual_id, foodbank_id, start_time, end_time, description, status, created_at, last_updated
FROM appointments
WHERE foodbank_id = $1
  AND ($2 = '' OR status = $2)
ORDER BY start_time ASC`

	rows, err := query(ctx, r.pool, q, foodbankID, string(status))
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		var st string
		if err := rows.Scan(
			&appt.ID,
			&appt.IndividualID,
			&appt.FoodbankID,
			&appt.StartTime,
			&appt.EndTime,
			&appt.Description,
			&st,
			&appt.CreatedAt,
			&appt.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appt.Status = domain.AppointmentStatus(st)
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate appointments: %w", rows.Err())
	}

	for i := range appts {
		items, err := r.loadItems(ctx, appts[i].ID)
		if err != nil {
			return nil, err
		}
		appts[i].RequestedItems = items
	}
	return appts, nil
}

func (r *AppointmentRepository) GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error) {
	return getLedgerForUpdate(ctx, r.pool, foodbankID)
}

func (r *AppointmentRepository) SaveLedger(ctx context.Context, ledger domain.StockLedger) error {
	return saveLedger(ctx, r.pool, ledger)
}
