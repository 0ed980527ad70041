package app

import (
	"context"

	"github.com/pratham-garg-456/FoodLink-WebApp/internal/clock"
	"github.com/pratham-garg-456/FoodLink-WebApp/internal/domain"
)

type ApplicationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateApplication(ctx context.Context, application domain.Application) error
	GetApplicationForUpdate(ctx context.Context, id string) (domain.Application, error)
	// FindActiveByTarget returns a volunteer's pending or approved
	// application for the target, nil when there is none.
	FindActiveByTarget(ctx context.Context, volunteerID string, target domain.ApplicationTarget) (*domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	DeleteApplication(ctx context.Context, id string) error
	ListApplicationsByTarget(ctx context.Context, target domain.ApplicationTarget, status domain.ApplicationStatus) ([]domain.Application, error)
}

// ApplicationService records volunteer applications against job postings
// and drives their one-way decision flow.
type ApplicationService struct {
	repo  ApplicationRepository
	clock clock.Clock
}

func NewApplicationService(repo ApplicationRepository, clk clock.Clock) *ApplicationService {
	return &ApplicationService{
		repo:  repo,
		clock: clk,
	}
}

// Apply files a pending application. A volunteer may hold at most one
// pending or approved application per target.
func (s *ApplicationService) Apply(ctx context.Context, volunteerID string, target domain.ApplicationTarget) (domain.Application, error) {
	if volunteerID == "" {
		return domain.Application{}, domain.ErrInvalidID
	}
	if err := target.Validate(); err != nil {
		return domain.Application{}, err
	}

	application := domain.Application{
		ID:          newID(),
		VolunteerID: volunteerID,
		Target:      target,
		Status:      domain.ApplicationStatusPending,
		AppliedAt:   s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindActiveByTarget(txCtx, volunteerID, target)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateApplication
		}
		return s.repo.CreateApplication(txCtx, application)
	})
	if err != nil {
		return domain.Application{}, err
	}
	return application, nil
}

// Decide approves or rejects a pending application. A decision value
// outside approved/rejected is bad input, not a state conflict.
func (s *ApplicationService) Decide(ctx context.Context, applicationID string, decision domain.ApplicationStatus) (domain.Application, error) {
	if decision != domain.ApplicationStatusApproved && decision != domain.ApplicationStatusRejected {
		return domain.Application{}, domain.ErrInvalidDecision
	}

	var result domain.Application

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		application, err := s.repo.GetApplicationForUpdate(txCtx, applicationID)
		if err != nil {
			return err
		}
		if application.Status != domain.ApplicationStatusPending {
			return domain.ErrAlreadyDecided
		}
		if err := s.repo.UpdateApplicationStatus(txCtx, applicationID, decision); err != nil {
			return err
		}
		application.Status = decision
		result = application
		return nil
	})
	if err != nil {
		return domain.Application{}, err
	}
	return result, nil
}

// Cancel withdraws an application. Only the owning volunteer may cancel;
// an application belonging to someone else reads as not found.
func (s *ApplicationService) Cancel(ctx context.Context, volunteerID, applicationID string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		application, err := s.repo.GetApplicationForUpdate(txCtx, applicationID)
		if err != nil {
			return err
		}
		if application.VolunteerID != volunteerID {
			return domain.ErrApplicationNotFound
		}
		return s.repo.DeleteApplication(txCtx, applicationID)
	})
}

// ListByTarget returns applications for one target, optionally filtered by
// status (empty status means all).
func (s *ApplicationService) ListByTarget(ctx context.Context, target domain.ApplicationTarget, status domain.ApplicationStatus) ([]domain.Application, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListApplicationsByTarget(ctx, target, status)
}
