package planner

import (
	"sort"
	"time"

	"machinepark/internal/modules/availability"

	"github.com/google/uuid"
)

// MaxDates caps how many calendar days a single draft may cover.
const MaxDates = 5

// DaySelection is one chosen calendar day inside a draft. MorningOpen and
// AfternoonOpen record whether that session could host the requested
// quantity when the day was selected; MaxMachines is the day's quantity
// ceiling.
type DaySelection struct {
	Date          time.Time  `json:"date"`
	Start         *TimeOfDay `json:"start,omitempty"`
	End           *TimeOfDay `json:"end,omitempty"`
	Quantity      int        `json:"quantity"`
	MorningOpen   bool       `json:"morning_open"`
	AfternoonOpen bool       `json:"afternoon_open"`
	MaxMachines   int        `json:"max_machines"`
}

// Draft is an in-progress reservation request. Days are ordered by date
// and unique per calendar date. Every transition goes through Apply, so a
// recorded sequence of actions replays deterministically.
type Draft struct {
	ID            uuid.UUID
	ServiceID     int64
	RequesterID   int64
	Quantity      int // requested machines per day, seeds new selections
	Capacity      int
	RatePerMinute float64

	SyncTimes    bool
	UnifiedStart *TimeOfDay
	UnifiedEnd   *TimeOfDay
	Days         []DaySelection

	// Availability snapshot the draft was opened against. Immutable,
	// shared between clones.
	Avail   map[string]availability.DayRecord
	Blocked map[string]bool

	// Today is set by the caller before Apply; keeping it on the state
	// keeps transitions replayable.
	Today time.Time
}

// Action is a single draft transition.
type Action interface{ isAction() }

type TimeField string

const (
	FieldStart TimeField = "start"
	FieldEnd   TimeField = "end"
)

// ToggleDate adds the date to the draft or removes it if present.
type ToggleDate struct{ Date time.Time }

// SetSync switches between unified and per-day time entry.
type SetSync struct{ Enabled bool }

// SetUnifiedTime edits one field of the unified pair. While sync is on the
// edit fans out to every selected day; the other field is never touched.
type SetUnifiedTime struct {
	Field TimeField
	Value *TimeOfDay
}

// SetDayTime edits one field of a single day. Rejected while sync is on.
type SetDayTime struct {
	Date  time.Time
	Field TimeField
	Value *TimeOfDay
}

// ApplyWindow overwrites the window of every day that can host it.
type ApplyWindow struct{ Start, End TimeOfDay }

// ApplyQuantity sets every day's quantity, clamped to its ceiling.
type ApplyQuantity struct{ N int }

func (ToggleDate) isAction()     {}
func (SetSync) isAction()        {}
func (SetUnifiedTime) isAction() {}
func (SetDayTime) isAction()     {}
func (ApplyWindow) isAction()    {}
func (ApplyQuantity) isAction()  {}

// ToggleEffect names what a ToggleDate transition actually did.
type ToggleEffect string

const (
	ToggleNone             ToggleEffect = ""
	ToggleAdded            ToggleEffect = "added"
	ToggleRemoved          ToggleEffect = "removed"
	ToggleRejectedCapacity ToggleEffect = "rejected_at_capacity"
)

// Outcome reports what a transition did beyond the new state, so the
// deliberate silent no-ops stay observable to callers that want to log
// or surface them.
type Outcome struct {
	Toggled      ToggleEffect `json:"toggled,omitempty"`
	SkippedDates []string     `json:"skipped_dates,omitempty"`
}

// Apply is the draft reducer: it returns the next state without mutating
// the receiver. On error the previous state is returned unchanged.
func (d Draft) Apply(act Action) (Draft, Outcome, error) {
	next := d.clone()
	var out Outcome
	var err error

	switch a := act.(type) {
	case ToggleDate:
		err = next.toggle(a.Date, &out)
	case SetSync:
		next.setSync(a.Enabled)
	case SetUnifiedTime:
		err = next.setUnifiedTime(a.Field, a.Value)
	case SetDayTime:
		err = next.setDayTime(a.Date, a.Field, a.Value)
	case ApplyWindow:
		err = next.applyWindow(a.Start, a.End, &out)
	case ApplyQuantity:
		err = next.applyQuantity(a.N)
	default:
		err = ErrValidation
	}

	if err != nil {
		return d, out, err
	}
	return next, out, nil
}

// Selectable applies the disqualification rules: past, weekend and blocked
// dates are out; an unselected date is also rejected when the draft is
// full or the date cannot host the requested quantity. Selected dates stay
// selectable so they can be toggled off.
func (d *Draft) Selectable(date time.Time) bool {
	date = midnight(date)
	if d.indexOf(date) >= 0 {
		return true
	}
	if !d.Today.IsZero() && date.Before(d.Today) {
		return false
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	key := availability.DateKey(date)
	if d.Blocked[key] {
		return false
	}
	if len(d.Days) >= MaxDates {
		return false
	}
	rec, ok := d.Avail[key]
	return ok && rec.Selectable(d.Quantity)
}

// QuantityCeiling is the largest quantity a batch apply may distribute:
// the minimum MaxMachines across the selected days. Zero when nothing is
// selected.
func (d *Draft) QuantityCeiling() int {
	if len(d.Days) == 0 {
		return 0
	}
	ceiling := d.Days[0].MaxMachines
	for _, day := range d.Days[1:] {
		if day.MaxMachines < ceiling {
			ceiling = day.MaxMachines
		}
	}
	return ceiling
}

func (d *Draft) toggle(date time.Time, out *Outcome) error {
	date = midnight(date)
	if i := d.indexOf(date); i >= 0 {
		d.Days = append(d.Days[:i], d.Days[i+1:]...)
		out.Toggled = ToggleRemoved
		return nil
	}

	if len(d.Days) >= MaxDates {
		// Deliberate silent no-op; the outcome carries the reason.
		out.Toggled = ToggleRejectedCapacity
		return nil
	}
	if !d.Selectable(date) {
		return ErrDateNotSelectable
	}

	rec := d.Avail[availability.DateKey(date)]
	max := rec.MorningFree
	if rec.AfternoonFree > max {
		max = rec.AfternoonFree
	}
	sel := DaySelection{
		Date:          date,
		Quantity:      minInt(d.Quantity, max),
		MorningOpen:   rec.MorningFree >= d.Quantity,
		AfternoonOpen: rec.AfternoonFree >= d.Quantity,
		MaxMachines:   max,
	}
	if d.SyncTimes {
		sel.Start = copyTime(d.UnifiedStart)
		sel.End = copyTime(d.UnifiedEnd)
	}

	d.Days = append(d.Days, sel)
	sort.Slice(d.Days, func(i, j int) bool { return d.Days[i].Date.Before(d.Days[j].Date) })
	out.Toggled = ToggleAdded
	return nil
}

func (d *Draft) setSync(enabled bool) {
	d.SyncTimes = enabled
	if !enabled {
		// Unified pair is retained but no longer fans out; each day keeps
		// its last-known times as an independent value.
		return
	}
	if d.UnifiedStart == nil && d.UnifiedEnd == nil && len(d.Days) > 0 {
		d.UnifiedStart = copyTime(d.Days[0].Start)
		d.UnifiedEnd = copyTime(d.Days[0].End)
	}
	d.fanOut(FieldStart)
	d.fanOut(FieldEnd)
}

func (d *Draft) setUnifiedTime(field TimeField, v *TimeOfDay) error {
	switch field {
	case FieldStart:
		d.UnifiedStart = copyTime(v)
	case FieldEnd:
		d.UnifiedEnd = copyTime(v)
	default:
		return ErrValidation
	}
	if d.SyncTimes {
		d.fanOut(field)
	}
	return nil
}

func (d *Draft) setDayTime(date time.Time, field TimeField, v *TimeOfDay) error {
	if d.SyncTimes {
		return ErrSyncActive
	}
	i := d.indexOf(midnight(date))
	if i < 0 {
		return ErrDayNotSelected
	}
	switch field {
	case FieldStart:
		d.Days[i].Start = copyTime(v)
	case FieldEnd:
		d.Days[i].End = copyTime(v)
	default:
		return ErrValidation
	}
	return nil
}

func (d *Draft) applyWindow(start, end TimeOfDay, out *Outcome) error {
	if err := ValidateWindow(&start, &end); err != nil {
		return err
	}

	morning, afternoon := windowSessions(start, end)
	for i := range d.Days {
		day := &d.Days[i]
		if (morning && !day.MorningOpen) || (afternoon && !day.AfternoonOpen) {
			// Days that cannot host the window keep their prior value.
			out.SkippedDates = append(out.SkippedDates, availability.DateKey(day.Date))
			continue
		}
		s, e := start, end
		day.Start, day.End = &s, &e
	}
	return nil
}

func (d *Draft) applyQuantity(n int) error {
	if n < 1 {
		return ErrQuantityInvalid
	}
	for i := range d.Days {
		d.Days[i].Quantity = minInt(n, d.Days[i].MaxMachines)
	}
	return nil
}

// fanOut copies one unified field onto every selected day.
func (d *Draft) fanOut(field TimeField) {
	for i := range d.Days {
		switch field {
		case FieldStart:
			d.Days[i].Start = copyTime(d.UnifiedStart)
		case FieldEnd:
			d.Days[i].End = copyTime(d.UnifiedEnd)
		}
	}
}

func (d *Draft) indexOf(date time.Time) int {
	for i, day := range d.Days {
		if day.Date.Equal(date) {
			return i
		}
	}
	return -1
}

func (d Draft) clone() Draft {
	next := d
	next.UnifiedStart = copyTime(d.UnifiedStart)
	next.UnifiedEnd = copyTime(d.UnifiedEnd)
	next.Days = make([]DaySelection, len(d.Days))
	for i, day := range d.Days {
		day.Start = copyTime(day.Start)
		day.End = copyTime(day.End)
		next.Days[i] = day
	}
	return next
}

func copyTime(t *TimeOfDay) *TimeOfDay {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
