package insight

import (
	"ChatPulse/entity"
	"testing"
	"time"
)

func TestBuildHeatmap(t *testing.T) {
	// Sunday 2025-06-01 12:00 UTC
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	msgs := []entity.MessageSummary{
		{Timestamp: now.Add(-time.Hour)},                 // Sunday 11:00
		{Timestamp: now.Add(-time.Hour)},                 // Sunday 11:00
		{Timestamp: now.Add(-24 * time.Hour)},            // Saturday 12:00
		{Timestamp: now.Add(-10 * 24 * time.Hour)},       // outside a 7 day window
		{Timestamp: now.Add(time.Hour)},                  // future, ignored
		{},                                               // zero timestamp, ignored
	}

	hm := BuildHeatmap(msgs, 7, now)

	if hm.TotalMessages != 3 {
		t.Fatalf("total = %d, want 3", hm.TotalMessages)
	}
	if got := hm.Buckets[int(time.Sunday)][11]; got != 2 {
		t.Errorf("sunday 11h bucket = %d, want 2", got)
	}
	if got := hm.Buckets[int(time.Saturday)][12]; got != 1 {
		t.Errorf("saturday 12h bucket = %d, want 1", got)
	}
}

func TestBuildHeatmap_DefaultsWindow(t *testing.T) {
	hm := BuildHeatmap(nil, 0, time.Now())
	if hm.Days != 7 {
		t.Errorf("days = %d, want default 7", hm.Days)
	}
}
