package usage

import "machinepark/internal/domain"

// CostCalculation is derived on every edit and never persisted directly;
// only the final adjusted cost and total duration are handed to the
// repository at finalization.
type CostCalculation struct {
	TotalMinutes     int     `json:"total_minutes"`
	DowntimeMinutes  int     `json:"downtime_minutes"`
	EffectiveMinutes int     `json:"effective_minutes"`
	RatePerMinute    float64 `json:"rate_per_minute"`
	OriginalCost     float64 `json:"original_cost"`
	AdjustedCost     float64 `json:"adjusted_cost"`
	Deduction        float64 `json:"deduction"`
	IncompleteSlots  int     `json:"incomplete_slots"`
}

// Compute turns recorded slot times, logged downtime and a per-minute rate
// into billable figures. Cancelled slots contribute nothing; a
// non-cancelled slot missing either time contributes nothing and is
// counted in IncompleteSlots. Downtime is summed across the whole
// reservation, with no per-day attribution.
func Compute(slots []domain.UsageSlot, downtime []domain.DowntimeEntry, ratePerMinute float64) CostCalculation {
	calc := CostCalculation{RatePerMinute: ratePerMinute}

	for _, s := range slots {
		if s.Status == domain.SlotCancelled {
			continue
		}
		if s.StartTime == nil || s.EndTime == nil {
			calc.IncompleteSlots++
			continue
		}
		if mins := int(s.EndTime.Sub(*s.StartTime).Minutes()); mins > 0 {
			calc.TotalMinutes += mins
		}
	}
	for _, d := range downtime {
		calc.DowntimeMinutes += d.DurationMinutes
	}

	calc.EffectiveMinutes = calc.TotalMinutes - calc.DowntimeMinutes
	if calc.EffectiveMinutes < 0 {
		calc.EffectiveMinutes = 0
	}
	calc.OriginalCost = float64(calc.TotalMinutes) * ratePerMinute
	calc.AdjustedCost = float64(calc.EffectiveMinutes) * ratePerMinute
	calc.Deduction = calc.OriginalCost - calc.AdjustedCost
	return calc
}

// OngoingCount reports how many slots still block finalization.
func OngoingCount(slots []domain.UsageSlot) int {
	n := 0
	for _, s := range slots {
		if s.Status == domain.SlotOngoing {
			n++
		}
	}
	return n
}

// MarkAllCompleted returns the slots with every ongoing one marked
// completed. Cancelled slots are never overwritten.
func MarkAllCompleted(slots []domain.UsageSlot) []domain.UsageSlot {
	out := make([]domain.UsageSlot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].Status == domain.SlotOngoing {
			out[i].Status = domain.SlotCompleted
		}
	}
	return out
}
