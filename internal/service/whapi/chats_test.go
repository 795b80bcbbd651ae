package whapi

import (
	"ChatPulse/entity"
	"ChatPulse/internal/config"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T, baseUrl string, pageSize int) *Service {
	t.Helper()
	conf := &config.Config{}
	conf.Whapi.BaseUrl = baseUrl
	conf.Whapi.Token = "test-token"
	conf.Whapi.PageSize = pageSize
	return NewService(conf, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchChats_PaginationAndDedup(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Unix()

	// five records over three pages of two; "dup" appears twice and the
	// second occurrence is fresher
	all := []map[string]interface{}{
		{"id": "a", "name": "A", "timestamp": now - 3600},
		{"id": "dup", "name": "stale", "timestamp": now - 7200, "updated_at": now - 7200},
		{"id": "b", "name": "B", "timestamp": now - 3600},
		{"id": "dup", "name": "fresh", "timestamp": now - 7200, "updated_at": now - 60},
		{"id": "c", "name": "C", "timestamp": now - 3600, "closed_at": now - 600,
			"last_message": map[string]interface{}{"timestamp": now - 60, "from": "+1555", "from_me": false}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		count, _ := strconv.Atoi(r.URL.Query().Get("count"))
		end := offset + count
		if end > len(all) {
			end = len(all)
		}
		page := all[offset:end]
		json.NewEncoder(w).Encode(map[string]interface{}{"chats": page, "total": len(all)})
	}))
	defer srv.Close()

	s := testService(t, srv.URL, 2)
	records, err := s.FetchChats(context.Background(), entity.ChatTypeUser, "+15559999")
	require.NoError(t, err)
	require.Len(t, records, 4, "five fetched records collapse to four unique chats")

	byId := make(map[string]*entity.ChatRecord, len(records))
	for _, r := range records {
		byId[r.ChatId] = r
		assert.Equal(t, "+15559999", r.OrgPhone)
		assert.Equal(t, entity.ChatTypeUser, r.Type)
	}

	require.Contains(t, byId, "dup")
	assert.Equal(t, "fresh", byId["dup"].Name, "most recently updated duplicate must win")

	require.Contains(t, byId, "c")
	require.NotNil(t, byId["c"].ClosedAt)
	require.NotNil(t, byId["c"].LatestMessage)
	assert.Equal(t, "+1555", byId["c"].LatestMessage.SenderPhone)
	require.NotNil(t, byId["c"].LatestMessage.FromMe)
	assert.False(t, *byId["c"].LatestMessage.FromMe)
}

func TestFetchChats_RetriesOnRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"chats": []map[string]interface{}{{"id": "a", "timestamp": time.Now().Unix()}},
			"total": 1,
		})
	}))
	defer srv.Close()

	s := testService(t, srv.URL, 10)
	records, err := s.FetchChats(context.Background(), entity.ChatTypeGroup, "")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestFetchChats_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := testService(t, srv.URL, 10)
	_, err := s.FetchChats(context.Background(), entity.ChatTypeUser, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchMessages_StopsAtCutoff(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	msgs := []map[string]interface{}{
		{"timestamp": now.Add(-1 * time.Hour).Unix(), "from": "+1"},
		{"timestamp": now.Add(-2 * time.Hour).Unix(), "from": "+2"},
		{"timestamp": now.Add(-30 * 24 * time.Hour).Unix(), "from": "+3"},
	}

	var pagesServed int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pagesServed, 1)
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		count, _ := strconv.Atoi(r.URL.Query().Get("count"))
		end := offset + count
		if end > len(msgs) {
			end = len(msgs)
		}
		if offset > len(msgs) {
			offset = len(msgs)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"messages": msgs[offset:end], "total": len(msgs)})
	}))
	defer srv.Close()

	s := testService(t, srv.URL, 3)
	got, err := s.FetchMessages(context.Background(), 7, now)
	require.NoError(t, err)
	assert.Len(t, got, 2, "message outside the window must be dropped")
	assert.Equal(t, int32(1), atomic.LoadInt32(&pagesServed), "paging stops once the cutoff is reached")
}
