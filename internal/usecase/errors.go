package usecase

import "errors"

// Ledger failures are legitimate business outcomes, reported as typed
// errors and never retried here. Retry policy belongs to the caller.
var (
	// ErrCapacityExceeded: admitting the booking would push the
	// schedule past max participants.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrScheduleNotBookable: the schedule does not exist or is not in
	// a status that accepts the write.
	ErrScheduleNotBookable = errors.New("schedule not bookable")

	// ErrAlreadyAssigned: the guide already holds a non-declined
	// assignment on the schedule.
	ErrAlreadyAssigned = errors.New("guide already assigned")

	// ErrNotAssigned: the guide holds no assignment on the schedule.
	ErrNotAssigned = errors.New("guide not assigned")

	// ErrInvalidTransition: the requested status change is not legal
	// from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrBusy: the per-schedule lock could not be taken within the
	// bounded wait. Safe for the caller to retry with backoff.
	ErrBusy = errors.New("schedule is busy, try again")

	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("not found")
)
