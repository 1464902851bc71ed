package planner

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrMissingTime       = errors.New("start and end time are required")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrDateNotSelectable = errors.New("date cannot be selected")
	ErrDayNotSelected    = errors.New("date is not part of the draft")
	ErrSyncActive        = errors.New("per-day times are read-only while synchronized")
	ErrQuantityInvalid   = errors.New("machine quantity must be at least 1")
	ErrNothingSelected   = errors.New("no dates selected")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrNoCapacity        = errors.New("not enough machines available for a selected day")
	ErrConflict          = errors.New("reservation conflicts with a concurrent submission")
)
