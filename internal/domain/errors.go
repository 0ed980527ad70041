package domain

import "errors"

var (
	ErrUnknownFoodItem       = errors.New("unknown food item")
	ErrDuplicateFoodItem     = errors.New("food item already exists")
	ErrNoSuchLedger          = errors.New("no inventory for this food bank")
	ErrItemNotFound          = errors.New("food item not in stock")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrInsufficientPoolStock = errors.New("insufficient event stock")
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInvalidInterval       = errors.New("end time must be after start time")
	ErrSlotUnavailable       = errors.New("time slot is not available")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrAlreadyTerminal       = errors.New("appointment is in a terminal state")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrJobTitleRequired      = errors.New("job title is required")
	ErrDeadlineRequired      = errors.New("job deadline is required")
	ErrApplicationNotFound   = errors.New("application not found")
	ErrDuplicateApplication  = errors.New("volunteer already applied for this target")
	ErrAlreadyDecided        = errors.New("application is already decided")
	ErrInvalidDecision       = errors.New("decision must be approved or rejected")
	ErrInvalidTarget         = errors.New("invalid application target")
	ErrInvalidID             = errors.New("invalid id")
)
