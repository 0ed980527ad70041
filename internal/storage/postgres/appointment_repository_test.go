package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/testutil"
)

func TestAppointmentRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	repo := NewAppointmentRepository(pool)

	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	slotStart := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	slotEnd := slotStart.Add(time.Hour)

	newAppt := func(foodbankID string, start, end time.Time, items []domain.StockEntry) domain.Appointment {
		return domain.Appointment{
			ID:             uuid.NewString(),
			IndividualID:   "ind-1",
			FoodbankID:     foodbankID,
			StartTime:      start,
			EndTime:        end,
			Description:    "weekly pickup",
			Status:         domain.AppointmentStatusPending,
			RequestedItems: items,
			CreatedAt:      created,
			LastUpdated:    created,
		}
	}

	t.Run("create and get roundtrip", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		appt := newAppt("fb-1", slotStart, slotEnd, []domain.StockEntry{
			{FoodName: "bread", Quantity: 2},
		})
		if err := repo.CreateAppointment(ctx, appt); err != nil {
			t.Fatalf("create: %v", err)
		}

		got, err := repo.GetAppointment(ctx, appt.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != domain.AppointmentStatusPending {
			t.Fatalf("expected pending, got %s", got.Status)
		}
		if !got.StartTime.Equal(slotStart) || !got.EndTime.Equal(slotEnd) {
			t.Fatalf("unexpected slot: %v - %v", got.StartTime, got.EndTime)
		}
		if len(got.RequestedItems) != 1 || got.RequestedItems[0].Quantity != 2 {
			t.Fatalf("expected requested items to roundtrip, got %+v", got.RequestedItems)
		}
	})

	t.Run("get missing appointment", func(t *testing.T) {
		if _, err := repo.GetAppointment(ctx, uuid.NewString()); err != domain.ErrAppointmentNotFound {
			t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
		}
	})

	t.Run("get with a malformed id", func(t *testing.T) {
		if _, err := repo.GetAppointment(ctx, "not-a-uuid"); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}
	})

	t.Run("CountOverlapping", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		appt := newAppt("fb-1", slotStart, slotEnd, nil)
		if err := repo.CreateAppointment(ctx, appt); err != nil {
			t.Fatalf("create: %v", err)
		}

		count, err := repo.CountOverlapping(ctx, "fb-1", slotStart.Add(30*time.Minute), slotEnd.Add(30*time.Minute), "")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 overlap, got %d", count)
		}

		count, err = repo.CountOverlapping(ctx, "fb-1", slotEnd, slotEnd.Add(time.Hour), "")
		if err != nil {
			t.Fatalf("count adjacent: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected adjacent slot not to overlap, got %d", count)
		}

		count, err = repo.CountOverlapping(ctx, "fb-2", slotStart, slotEnd, "")
		if err != nil {
			t.Fatalf("count other foodbank: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected other food bank to be clear, got %d", count)
		}

		count, err = repo.CountOverlapping(ctx, "fb-1", slotStart, slotEnd, appt.ID)
		if err != nil {
			t.Fatalf("count excluding self: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected self to be excluded, got %d", count)
		}
	})

	t.Run("cancelled appointments free the slot", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		appt := newAppt("fb-1", slotStart, slotEnd, nil)
		if err := repo.CreateAppointment(ctx, appt); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.UpdateAppointmentStatus(ctx, appt.ID, domain.AppointmentStatusCancelled, created.Add(time.Hour)); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		count, err := repo.CountOverlapping(ctx, "fb-1", slotStart, slotEnd, "")
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected cancelled appointment to be ignored, got %d", count)
		}
	})

	t.Run("updating a missing appointment", func(t *testing.T) {
		err := repo.UpdateAppointmentStatus(ctx, uuid.NewString(), domain.AppointmentStatusConfirmed, created)
		if err != domain.ErrAppointmentNotFound {
			t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
		}
	})

	t.Run("UpdateAppointmentSlot", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		appt := newAppt("fb-1", slotStart, slotEnd, nil)
		if err := repo.CreateAppointment(ctx, appt); err != nil {
			t.Fatalf("create: %v", err)
		}

		newStart := slotStart.Add(24 * time.Hour)
		newEnd := newStart.Add(time.Hour)
		at := created.Add(time.Hour)
		if err := repo.UpdateAppointmentSlot(ctx, appt.ID, newStart, newEnd, domain.AppointmentStatusRescheduled, at); err != nil {
			t.Fatalf("update slot: %v", err)
		}

		got, err := repo.GetAppointment(ctx, appt.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.StartTime.Equal(newStart) || got.Status != domain.AppointmentStatusRescheduled {
			t.Fatalf("unexpected appointment after move: %+v", got)
		}
		if !got.LastUpdated.Equal(at) {
			t.Fatalf("expected last_updated %v, got %v", at, got.LastUpdated)
		}
	})

	t.Run("ListAppointments filters by status and orders by start", func(t *testing.T) {
		testutil.TruncateAll(t, ctx, pool)

		second := newAppt("fb-1", slotStart.Add(2*time.Hour), slotStart.Add(3*time.Hour), nil)
		first := newAppt("fb-1", slotStart, slotEnd, nil)
		other := newAppt("fb-2", slotStart, slotEnd, nil)
		for _, appt := range []domain.Appointment{second, first, other} {
			if err := repo.CreateAppointment(ctx, appt); err != nil {
				t.Fatalf("create: %v", err)
			}
		}
		if err := repo.UpdateAppointmentStatus(ctx, first.ID, domain.AppointmentStatusConfirmed, created); err != nil {
			t.Fatalf("confirm: %v", err)
		}

		all, err := repo.ListAppointments(ctx, "fb-1", "")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 appointments, got %d", len(all))
		}
		if all[0].ID != first.ID {
			t.Fatal("expected the earlier slot first")
		}

		confirmed, err := repo.ListAppointments(ctx, "fb-1", domain.AppointmentStatusConfirmed)
		if err != nil {
			t.Fatalf("list confirmed: %v", err)
		}
		if len(confirmed) != 1 || confirmed[0].ID != first.ID {
			t.Fatalf("expected only the confirmed appointment, got %+v", confirmed)
		}
	})
}
