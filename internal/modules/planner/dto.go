package planner

type CreateDraftRequest struct {
	ServiceID   int64  `json:"service_id" binding:"required" validate:"required,gte=1"`
	RequesterID int64  `json:"requester_id" binding:"required" validate:"required,gte=1"`
	Quantity    int    `json:"quantity" binding:"required" validate:"required,gte=1"`
	Month       string `json:"month" binding:"required" validate:"required"` // YYYY-MM
}

type ToggleDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type SetSyncRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// TimeEditRequest edits one field of a time pair. A null value clears it.
type TimeEditRequest struct {
	Field string  `json:"field" binding:"required,oneof=start end"`
	Value *string `json:"value"`
}

type BatchTimeRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type BatchQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type DraftDayResponse struct {
	Date          string  `json:"date"`
	Start         *string `json:"start"`
	End           *string `json:"end"`
	Quantity      int     `json:"quantity"`
	MaxMachines   int     `json:"max_machines"`
	MorningOpen   bool    `json:"morning_open"`
	AfternoonOpen bool    `json:"afternoon_open"`
}

type DraftResponse struct {
	ID              string             `json:"id"`
	ServiceID       int64              `json:"service_id"`
	Quantity        int                `json:"quantity"`
	Capacity        int                `json:"capacity"`
	SyncTimes       bool               `json:"sync_times"`
	UnifiedStart    *string            `json:"unified_start"`
	UnifiedEnd      *string            `json:"unified_end"`
	QuantityCeiling int                `json:"quantity_ceiling"`
	Days            []DraftDayResponse `json:"days"`
	Outcome         *Outcome           `json:"outcome,omitempty"`
}

func toDraftResponse(d Draft, out *Outcome) DraftResponse {
	days := make([]DraftDayResponse, 0, len(d.Days))
	for _, day := range d.Days {
		days = append(days, DraftDayResponse{
			Date:          day.Date.Format("2006-01-02"),
			Start:         timeString(day.Start),
			End:           timeString(day.End),
			Quantity:      day.Quantity,
			MaxMachines:   day.MaxMachines,
			MorningOpen:   day.MorningOpen,
			AfternoonOpen: day.AfternoonOpen,
		})
	}
	return DraftResponse{
		ID:              d.ID.String(),
		ServiceID:       d.ServiceID,
		Quantity:        d.Quantity,
		Capacity:        d.Capacity,
		SyncTimes:       d.SyncTimes,
		UnifiedStart:    timeString(d.UnifiedStart),
		UnifiedEnd:      timeString(d.UnifiedEnd),
		QuantityCeiling: d.QuantityCeiling(),
		Days:            days,
		Outcome:         out,
	}
}

func timeString(t *TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
