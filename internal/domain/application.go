package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

type TargetKind string

const (
	TargetKindEvent       TargetKind = "event"
	TargetKindFoodbankJob TargetKind = "foodbank_job"
)

// ApplicationTarget is the tagged variant an application points at: an
// event or a food-bank-wide job. Event targets may name a specific job;
// general event applications leave JobID empty.
type ApplicationTarget struct {
	Kind       TargetKind
	EventID    string
	FoodbankID string
	JobID      string
}

// Validate checks that the identifiers required by the kind are present.
func (t ApplicationTarget) Validate() error {
	switch t.Kind {
	case TargetKindEvent:
		if t.EventID == "" {
			return ErrInvalidTarget
		}
	case TargetKindFoodbankJob:
		if t.FoodbankID == "" || t.JobID == "" {
			return ErrInvalidTarget
		}
	default:
		return ErrInvalidTarget
	}
	return nil
}

// Application records a volunteer applying for a job posting. Status moves
// one way from pending; approved and rejected are terminal.
type Application struct {
	ID          string
	VolunteerID string
	Target      ApplicationTarget
	Status      ApplicationStatus
	AppliedAt   time.Time
}
