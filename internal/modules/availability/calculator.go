package availability

import (
	"time"

	"machinepark/internal/domain"
)

const (
	morningEndHour     = 12
	afternoonStartHour = 13
)

// DayRecord is the derived per-date availability of a machine pool.
// Recomputed from the reservation snapshot, never persisted.
type DayRecord struct {
	Date          time.Time `json:"date"`
	MorningFree   int       `json:"morning_free"`
	AfternoonFree int       `json:"afternoon_free"`
	AllDayFree    int       `json:"all_day_free"`
}

// Selectable reports whether the date can host quantity machines in at
// least one session.
func (r DayRecord) Selectable(quantity int) bool {
	return r.MorningFree >= quantity || r.AfternoonFree >= quantity
}

// DateKey formats a date the way month maps are keyed.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// ComputeMonth derives free-machine counts for every day of the visible
// month from the reservations whose days fall inside it. Every day starts
// at full capacity; counts are floored at zero.
func ComputeMonth(year int, month time.Month, capacity int, reservations []domain.Reservation) map[string]DayRecord {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := make(map[string]DayRecord)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days[DateKey(d)] = DayRecord{
			Date:          d,
			MorningFree:   capacity,
			AfternoonFree: capacity,
			AllDayFree:    capacity,
		}
	}

	for _, res := range reservations {
		for _, day := range res.Days {
			key := DateKey(day.Date)
			rec, ok := days[key]
			if !ok {
				continue
			}

			morning, afternoon := sessionUse(day)
			if morning {
				rec.MorningFree = floorZero(rec.MorningFree - day.Quantity)
			}
			if afternoon {
				rec.AfternoonFree = floorZero(rec.AfternoonFree - day.Quantity)
			}
			if morning && afternoon {
				rec.AllDayFree = floorZero(rec.AllDayFree - day.Quantity)
			}
			days[key] = rec
		}
	}
	return days
}

// sessionUse classifies a reservation day by hour boundary: a slot starting
// before noon occupies the morning, one ending at or after 13:00 occupies
// the afternoon. A day without explicit times occupies the whole day.
func sessionUse(day domain.ReservationDay) (morning, afternoon bool) {
	if day.StartMinute == nil || day.EndMinute == nil {
		return true, true
	}
	return *day.StartMinute/60 < morningEndHour, *day.EndMinute/60 >= afternoonStartHour
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
