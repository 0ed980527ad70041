package domain

import "time"

type JobStatus string

const (
	JobStatusAvailable   JobStatus = "available"
	JobStatusUnavailable JobStatus = "unavailable"
)

// Job is a posting volunteers can apply to. EventID is empty for a
// food-bank-wide posting and set for an event-scoped one. Status is derived
// from the deadline on every read; see DeriveJobStatus.
type Job struct {
	ID          string
	FoodbankID  string
	EventID     string
	Title       string
	Description string
	Location    string
	Category    string
	DatePosted  time.Time
	Deadline    time.Time
	Status      JobStatus
}

// IsEventJob reports whether the posting is scoped to an event.
func (j Job) IsEventJob() bool {
	return j.EventID != ""
}

// DeriveJobStatus computes the status a job must read as. A passed deadline
// forces unavailable; a future deadline keeps the stored status, so a
// manual early unavailable is never flipped back to available.
func DeriveJobStatus(stored JobStatus, deadline, now time.Time) JobStatus {
	if !deadline.After(now) {
		return JobStatusUnavailable
	}
	return stored
}
