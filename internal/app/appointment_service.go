package app

import (
	"context"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type AppointmentRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockCalendar serializes scheduling for one food bank within the
	// current transaction so concurrent bookings cannot both pass the
	// overlap check.
	LockCalendar(ctx context.Context, foodbankID string) error
	CreateAppointment(ctx context.Context, appt domain.Appointment) error
	GetAppointmentForUpdate(ctx context.Context, id string) (domain.Appointment, error)
	GetAppointment(ctx context.Context, id string) (domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus, at time.Time) error
	UpdateAppointmentSlot(ctx context.Context, id string, start, end time.Time, status domain.AppointmentStatus, at time.Time) error
	CountOverlapping(ctx context.Context, foodbankID string, start, end time.Time, excludeID string) (int, error)
	ListAppointments(ctx context.Context, foodbankID string, status domain.AppointmentStatus) ([]domain.Appointment, error)
	GetLedgerForUpdate(ctx context.Context, foodbankID string) (*domain.StockLedger, error)
	SaveLedger(ctx context.Context, ledger domain.StockLedger) error
}

// AppointmentService schedules pickups against food banks. Requested items
// are reserved from the main ledger when the appointment is created and
// restored exactly once when it is cancelled.
type AppointmentService struct {
	repo  AppointmentRepository
	clock clock.Clock
}

func NewAppointmentService(repo AppointmentRepository, clk clock.Clock) *AppointmentService {
	return &AppointmentService{
		repo:  repo,
		clock: clk,
	}
}

type CreateAppointmentInput struct {
	IndividualID   string
	FoodbankID     string
	StartTime      time.Time
	EndTime        time.Time
	Description    string
	RequestedItems []StockItemInput
}

// Create validates the slot, reserves the requested items and stores the
// appointment as pending, all in one transaction.
func (s *AppointmentService) Create(ctx context.Context, in CreateAppointmentInput) (domain.Appointment, error) {
	if !in.StartTime.Before(in.EndTime) {
		return domain.Appointment{}, domain.ErrInvalidInterval
	}
	if len(in.RequestedItems) > 0 {
		if err := validateItems(in.RequestedItems); err != nil {
			return domain.Appointment{}, err
		}
	}

	now := s.clock.Now()
	appt := domain.Appointment{
		ID:           newID(),
		IndividualID: in.IndividualID,
		FoodbankID:   in.FoodbankID,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Description:  in.Description,
		Status:       domain.AppointmentStatusPending,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	for _, item := range in.RequestedItems {
		appt.RequestedItems = append(appt.RequestedItems, domain.StockEntry{
			FoodName: item.FoodName,
			Quantity: item.Quantity,
		})
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockCalendar(txCtx, in.FoodbankID); err != nil {
			return err
		}

		overlapping, err := s.repo.CountOverlapping(txCtx, in.FoodbankID, in.StartTime, in.EndTime, "")
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return domain.ErrSlotUnavailable
		}

		if len(appt.RequestedItems) > 0 {
			if err := s.reserveItems(txCtx, in.FoodbankID, appt.RequestedItems); err != nil {
				return err
			}
		}

		return s.repo.CreateAppointment(txCtx, appt)
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return appt, nil
}

// UpdateStatus drives the appointment state machine. Cancelling restores
// the reserved items to the food bank ledger in the same transaction as the
// status flip; picking moves no stock.
func (s *AppointmentService) UpdateStatus(ctx context.Context, appointmentID string, newStatus domain.AppointmentStatus) (domain.Appointment, error) {
	if !domain.ValidAppointmentStatus(newStatus) {
		return domain.Appointment{}, domain.ErrInvalidTransition
	}

	now := s.clock.Now()
	var result domain.Appointment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		appt, err := s.repo.GetAppointmentForUpdate(txCtx, appointmentID)
		if err != nil {
			return err
		}

		if domain.IsTerminalAppointmentStatus(appt.Status) {
			return domain.ErrAlreadyTerminal
		}
		if !domain.CanTransition(appt.Status, newStatus) {
			return domain.ErrInvalidTransition
		}

		if newStatus == domain.AppointmentStatusCancelled && len(appt.RequestedItems) > 0 {
			if err := s.restoreItems(txCtx, appt.FoodbankID, appt.RequestedItems, now); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateAppointmentStatus(txCtx, appointmentID, newStatus, now); err != nil {
			return err
		}

		appt.Status = newStatus
		appt.LastUpdated = now
		result = appt
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return result, nil
}

// Reschedule moves a non-terminal appointment to a new slot, checking the
// new interval against every other non-cancelled appointment of the same
// food bank. Stock is untouched.
func (s *AppointmentService) Reschedule(ctx context.Context, appointmentID string, newStart, newEnd time.Time) (domain.Appointment, error) {
	if !newStart.Before(newEnd) {
		return domain.Appointment{}, domain.ErrInvalidInterval
	}

	now := s.clock.Now()
	var result domain.Appointment

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		appt, err := s.repo.GetAppointmentForUpdate(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if domain.IsTerminalAppointmentStatus(appt.Status) {
			return domain.ErrAlreadyTerminal
		}

		if err := s.repo.LockCalendar(txCtx, appt.FoodbankID); err != nil {
			return err
		}

		overlapping, err := s.repo.CountOverlapping(txCtx, appt.FoodbankID, newStart, newEnd, appt.ID)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return domain.ErrSlotUnavailable
		}

		if err := s.repo.UpdateAppointmentSlot(txCtx, appt.ID, newStart, newEnd, domain.AppointmentStatusRescheduled, now); err != nil {
			return err
		}

		appt.StartTime = newStart
		appt.EndTime = newEnd
		appt.Status = domain.AppointmentStatusRescheduled
		appt.LastUpdated = now
		result = appt
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return result, nil
}

// Get returns one appointment.
func (s *AppointmentService) Get(ctx context.Context, appointmentID string) (domain.Appointment, error) {
	return s.repo.GetAppointment(ctx, appointmentID)
}

// ListByFoodbank returns a food bank's appointments, optionally filtered by
// status (empty status means all).
func (s *AppointmentService) ListByFoodbank(ctx context.Context, foodbankID string, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	if status != "" && !domain.ValidAppointmentStatus(status) {
		return nil, domain.ErrInvalidTransition
	}
	return s.repo.ListAppointments(ctx, foodbankID, status)
}

func (s *AppointmentService) reserveItems(ctx context.Context, foodbankID string, items []domain.StockEntry) error {
	ledger, err := s.repo.GetLedgerForUpdate(ctx, foodbankID)
	if err != nil {
		return err
	}
	if ledger == nil {
		return domain.ErrNoSuchLedger
	}
	for _, item := range items {
		if err := ledger.Remove(item.FoodName, item.Quantity); err != nil {
			return err
		}
	}
	ledger.LastUpdated = s.clock.Now()
	return s.repo.SaveLedger(ctx, *ledger)
}

func (s *AppointmentService) restoreItems(ctx context.Context, foodbankID string, items []domain.StockEntry, now time.Time) error {
	ledger, err := s.repo.GetLedgerForUpdate(ctx, foodbankID)
	if err != nil {
		return err
	}
	if ledger == nil {
		ledger = &domain.StockLedger{FoodbankID: foodbankID}
	}
	for _, item := range items {
		ledger.Add(item.FoodName, item.Quantity)
	}
	ledger.LastUpdated = now
	return s.repo.SaveLedger(ctx, *ledger)
}
