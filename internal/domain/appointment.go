package domain

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusPicked      AppointmentStatus = "picked"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
)

// Appointment is a time-boxed pickup request made by an individual against
// a food bank. Requested items are reserved from the food bank ledger when
// the appointment is created and restored exactly once on cancellation.
type Appointment struct {
	ID             string
	IndividualID   string
	FoodbankID     string
	StartTime      time.Time
	EndTime        time.Time
	Description    string
	RequestedItems []StockEntry
	Status         AppointmentStatus
	CreatedAt      time.Time
	LastUpdated    time.Time
}

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:     {AppointmentStatusConfirmed, AppointmentStatusRescheduled, AppointmentStatusCancelled},
	AppointmentStatusConfirmed:   {AppointmentStatusPicked, AppointmentStatusCancelled},
	AppointmentStatusRescheduled: {AppointmentStatusConfirmed, AppointmentStatusCancelled},
}

// IsTerminalAppointmentStatus reports whether no further transition is
// accepted from status.
func IsTerminalAppointmentStatus(status AppointmentStatus) bool {
	return status == AppointmentStatusCancelled || status == AppointmentStatusPicked
}

// CanTransition reports whether the status machine permits from -> to.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidAppointmentStatus reports whether s names a known status.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusPicked,
		AppointmentStatusRescheduled, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Overlaps reports whether the half-open intervals [start1,end1) and
// [start2,end2) share at least one instant.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}
