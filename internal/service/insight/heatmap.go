package insight

import (
	"ChatPulse/entity"
	"time"
)

// BuildHeatmap buckets message timestamps by weekday and hour over the last
// days*24h. Straight counting; no classification involved.
func BuildHeatmap(msgs []entity.MessageSummary, days int, now time.Time) entity.Heatmap {
	if days <= 0 {
		days = 7
	}
	hm := entity.Heatmap{Days: days}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	for _, msg := range msgs {
		if msg.Timestamp.IsZero() || msg.Timestamp.Before(cutoff) || msg.Timestamp.After(now) {
			continue
		}
		local := msg.Timestamp.UTC()
		hm.Buckets[int(local.Weekday())][local.Hour()]++
		hm.TotalMessages++
	}
	return hm
}
