package stats

import (
	"ChatPulse/entity"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCore struct {
	lastFilter entity.StatsFilter
	metrics    *entity.Metrics
}

func (f *fakeCore) OpenChatMetrics(_ context.Context, filter entity.StatsFilter) (*entity.Metrics, error) {
	f.lastFilter = filter
	return f.metrics, nil
}

func (f *fakeCore) Heatmap(_ context.Context, days int) (*entity.Heatmap, error) {
	return &entity.Heatmap{Days: days}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenChats(t *testing.T) {
	core := &fakeCore{metrics: &entity.Metrics{TotalOpenChats: 2}}
	handler := OpenChats(discardLogger(), core)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/open-chats?type=user,group&agent=dana", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var metrics entity.Metrics
	if err := json.NewDecoder(rec.Body).Decode(&metrics); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if metrics.TotalOpenChats != 2 {
		t.Errorf("totalOpenChats = %d, want 2", metrics.TotalOpenChats)
	}

	if len(core.lastFilter.Types) != 2 {
		t.Errorf("parsed types = %v, want [user group]", core.lastFilter.Types)
	}
	if core.lastFilter.Agent != "dana" {
		t.Errorf("agent = %q, want dana", core.lastFilter.Agent)
	}
}

func TestOpenChats_UnknownType(t *testing.T) {
	handler := OpenChats(discardLogger(), &fakeCore{metrics: &entity.Metrics{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/open-chats?type=broadcast", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHeatmapHandler_BadDays(t *testing.T) {
	handler := HeatmapHandler(discardLogger(), &fakeCore{metrics: &entity.Metrics{}})

	for _, days := range []string{"0", "-2", "500", "week"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/heatmap?days="+days, nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("days=%s: status = %d, want 400", days, rec.Code)
		}
	}
}
