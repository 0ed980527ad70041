package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/app"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type stubScheduler struct {
	appt      domain.Appointment
	appts     []domain.Appointment
	err       error
	gotCreate app.CreateAppointmentInput
	gotID     string
	gotStatus domain.AppointmentStatus
	gotStart  time.Time
	gotEnd    time.Time
}

func (s *stubScheduler) Create(_ context.Context, in app.CreateAppointmentInput) (domain.Appointment, error) {
	s.gotCreate = in
	return s.appt, s.err
}

func (s *stubScheduler) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) (domain.Appointment, error) {
	s.gotID, s.gotStatus = id, status
	return s.appt, s.err
}

func (s *stubScheduler) Reschedule(_ context.Context, id string, start, end time.Time) (domain.Appointment, error) {
	s.gotID, s.gotStart, s.gotEnd = id, start, end
	return s.appt, s.err
}

func (s *stubScheduler) Get(_ context.Context, id string) (domain.Appointment, error) {
	s.gotID = id
	return s.appt, s.err
}

func (s *stubScheduler) ListByFoodbank(_ context.Context, foodbankID string, status domain.AppointmentStatus) ([]domain.Appointment, error) {
	s.gotID, s.gotStatus = foodbankID, status
	return s.appts, s.err
}

func TestHandleAppointments(t *testing.T) {
	slotStart := time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)
	appt := domain.Appointment{
		ID:           "a0a3a9af-6f00-4a66-bd52-6c819a4a0e5c",
		IndividualID: "ind-1",
		FoodbankID:   "fb-1",
		StartTime:    slotStart,
		EndTime:      slotStart.Add(time.Hour),
		Status:       domain.AppointmentStatusPending,
	}

	t.Run("POST creates and returns 201", func(t *testing.T) {
		stub := &stubScheduler{appt: appt}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{
			"individual_id": "ind-1",
			"foodbank_id": "fb-1",
			"start_time": "2025-03-12T10:00:00Z",
			"end_time": "2025-03-12T11:00:00Z",
			"product": [{"food_name": "bread", "quantity": 2}]
		}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.gotCreate.FoodbankID != "fb-1" || !stub.gotCreate.StartTime.Equal(slotStart) {
			t.Fatalf("unexpected input passed through: %+v", stub.gotCreate)
		}
		if len(stub.gotCreate.RequestedItems) != 1 || stub.gotCreate.RequestedItems[0].FoodName != "bread" {
			t.Fatalf("expected requested items to pass through, got %+v", stub.gotCreate.RequestedItems)
		}
	})

	t.Run("POST without ids is a 400", func(t *testing.T) {
		stub := &stubScheduler{appt: appt}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{
			"start_time": "2025-03-12T10:00:00Z",
			"end_time": "2025-03-12T11:00:00Z"
		}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("slot conflict maps to 409", func(t *testing.T) {
		stub := &stubScheduler{err: domain.ErrSlotUnavailable}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(`{
			"individual_id": "ind-1",
			"foodbank_id": "fb-1",
			"start_time": "2025-03-12T10:00:00Z",
			"end_time": "2025-03-12T11:00:00Z"
		}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error body: %v", err)
		}
		if resp.Code != "slot_unavailable" {
			t.Fatalf("expected slot_unavailable, got %q", resp.Code)
		}
	})

	t.Run("PATCH status routes to UpdateStatus", func(t *testing.T) {
		stub := &stubScheduler{appt: appt}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID+"/status",
			strings.NewReader(`{"status": "confirmed"}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.gotID != appt.ID || stub.gotStatus != domain.AppointmentStatusConfirmed {
			t.Fatalf("unexpected call: id=%q status=%q", stub.gotID, stub.gotStatus)
		}
	})

	t.Run("PATCH reschedule passes the new slot", func(t *testing.T) {
		stub := &stubScheduler{appt: appt}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID+"/reschedule",
			strings.NewReader(`{"start_time": "2025-03-13T10:00:00Z", "end_time": "2025-03-13T11:00:00Z"}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		wantStart := time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC)
		if !stub.gotStart.Equal(wantStart) {
			t.Fatalf("expected start %v, got %v", wantStart, stub.gotStart)
		}
	})

	t.Run("GET list requires foodbank_id", func(t *testing.T) {
		stub := &stubScheduler{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("GET list forwards the status filter", func(t *testing.T) {
		stub := &stubScheduler{appts: []domain.Appointment{appt}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments?foodbank_id=fb-1&status=pending", nil)

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.gotID != "fb-1" || stub.gotStatus != domain.AppointmentStatusPending {
			t.Fatalf("unexpected call: id=%q status=%q", stub.gotID, stub.gotStatus)
		}
		var resp struct {
			Appointments []appointmentResponse `json:"appointments"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp.Appointments) != 1 || resp.Appointments[0].ID != appt.ID {
			t.Fatalf("unexpected body: %+v", resp)
		}
	})

	t.Run("terminal appointment maps to 409", func(t *testing.T) {
		stub := &stubScheduler{err: domain.ErrAlreadyTerminal}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID+"/status",
			strings.NewReader(`{"status": "cancelled"}`))

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("missing appointment maps to 404", func(t *testing.T) {
		stub := &stubScheduler{err: domain.ErrAppointmentNotFound}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/appointments/"+appt.ID, nil)

		HandleAppointments(stub)(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
