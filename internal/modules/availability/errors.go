package availability

import "errors"

var (
	ErrServiceNotFound     = errors.New("machine service not found")
	ErrSnapshotUnavailable = errors.New("availability snapshot unavailable")
	ErrValidation          = errors.New("validation error")
)
