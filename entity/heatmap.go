package entity

// Heatmap counts messages per day-of-week and hour-of-day over the
// requested window. Weekday 0 is Sunday, matching time.Weekday.
type Heatmap struct {
	Buckets       [7][24]int `json:"buckets"`
	TotalMessages int        `json:"total_messages"`
	Days          int        `json:"days"`
}
