package usage

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("reservation not found")
	ErrSlotNotFound  = errors.New("usage slot not found")
	ErrSlotCancelled = errors.New("cancelled slots are frozen")
	ErrStatusFinal   = errors.New("slot status can no longer change")
	ErrInvalidTimes  = errors.New("end time must be after start time")
	ErrValidation    = errors.New("validation error")
)

// OngoingSlotsError refuses finalization while slots remain ongoing.
type OngoingSlotsError struct {
	Count int
}

func (e *OngoingSlotsError) Error() string {
	return fmt.Sprintf("finalization blocked: %d slot(s) still ongoing", e.Count)
}
