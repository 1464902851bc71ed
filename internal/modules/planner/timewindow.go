package planner

import (
	"fmt"
	"strconv"
	"strings"
)

// Session is a half-day window of the business day.
type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
	SessionBoth      Session = "both"
)

// Business hours, in minutes since midnight. Mornings run 08:00-12:00,
// afternoons 13:00-17:00, on a 15-minute grid.
const (
	MorningOpen    = 8 * 60
	MorningClose   = 12 * 60
	AfternoonOpen  = 13 * 60
	AfternoonClose = 17 * 60

	stepMinutes = 15
)

// TimeOfDay is a clock time stored as minutes since midnight.
type TimeOfDay int

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats as HH:MM. ParseTimeOfDay is the lossless inverse for
// every value StartOptions and EndOptions generate.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// StartOptions lists the legal start times for a session, quantized to
// 15-minute increments. The session close itself is not a start.
func StartOptions(s Session) []TimeOfDay {
	var out []TimeOfDay
	if s == SessionMorning || s == SessionBoth {
		for t := MorningOpen; t < MorningClose; t += stepMinutes {
			out = append(out, TimeOfDay(t))
		}
	}
	if s == SessionAfternoon || s == SessionBoth {
		for t := AfternoonOpen; t < AfternoonClose; t += stepMinutes {
			out = append(out, TimeOfDay(t))
		}
	}
	return out
}

// EndOptions lists every legal end time strictly after start, through the
// remainder of business hours. 12:00 closes a morning window; the midday
// gap interior is skipped; nothing past 17:00 is offered.
func EndOptions(start TimeOfDay) []TimeOfDay {
	var out []TimeOfDay
	for t := int(start) + stepMinutes; t <= AfternoonClose; t += stepMinutes {
		if t > MorningClose && t <= AfternoonOpen {
			continue
		}
		out = append(out, TimeOfDay(t))
	}
	return out
}

// ValidateWindow checks a start/end pair: both must be present and the end
// must fall after the start. Side-effect free.
func ValidateWindow(start, end *TimeOfDay) error {
	if start == nil || end == nil {
		return ErrMissingTime
	}
	if *end <= *start {
		return ErrEndBeforeStart
	}
	return nil
}

// windowSessions classifies a window by the same hour boundaries the
// availability calculator uses.
func windowSessions(start, end TimeOfDay) (morning, afternoon bool) {
	return start.Hour() < MorningClose/60, end.Hour() >= AfternoonOpen/60
}
