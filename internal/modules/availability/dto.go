package availability

type DayAvailability struct {
	Date          string `json:"date"`
	MorningFree   int    `json:"morning_free"`
	AfternoonFree int    `json:"afternoon_free"`
	AllDayFree    int    `json:"all_day_free"`
	Blocked       bool   `json:"blocked"`
	Selectable    bool   `json:"selectable"`
}

type MonthResponse struct {
	ServiceID int64             `json:"service_id"`
	Month     string            `json:"month"`
	Capacity  int               `json:"capacity"`
	Days      []DayAvailability `json:"days"`
}
