package insight

import (
	"ChatPulse/entity"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultPolicy()

	chats := []*entity.ChatRecord{
		{
			// customer waiting 30h, overdue for a user chat
			ChatId:   "overdue",
			Name:     "Alice",
			Type:     entity.ChatTypeUser,
			OrgPhone: "+15559999",
			LatestMessage: &entity.MessageSummary{
				Timestamp:   now.Add(-30 * time.Hour),
				FromMe:      ptrBool(false),
				SenderPhone: "+15557777",
				Body:        strings.Repeat("x", 150),
			},
		},
		{
			// support replied last, very old but never flagged
			ChatId:   "answered",
			Name:     "Bob",
			Type:     entity.ChatTypeUser,
			OrgPhone: "+15559999",
			LatestMessage: &entity.MessageSummary{
				Timestamp: now.Add(-200 * time.Hour),
				FromMe:    ptrBool(true),
			},
		},
		{
			// created-only chat: counted, but excluded from age aggregates
			ChatId:    "created-only",
			Name:      "Carol",
			Type:      entity.ChatTypeUser,
			CreatedAt: now.Add(-10 * time.Hour),
		},
		{
			// malformed record, skipped
			ChatId: "",
		},
	}

	metrics := Aggregate(chats, now, policy)

	assert.Equal(t, 3, metrics.TotalOpenChats)
	assert.Equal(t, 1, metrics.ChatsWithDelayedResponse)
	assert.Len(t, metrics.DelayedResponseDetails, metrics.ChatsWithDelayedResponse)
	assert.Len(t, metrics.OpenChatDetails, 3)

	// average over valid ages only: (30 + 200) / 2
	assert.InDelta(t, 115.0, metrics.AverageAgeInHours, 0.01)
	assert.InDelta(t, 200.0, metrics.MaxAgeInHours, 0.01)

	require.NotNil(t, metrics.Diagnostics)
	assert.Equal(t, 1, metrics.Diagnostics.SkippedRecords)
	assert.Equal(t, 3, metrics.Diagnostics.CountsByType[entity.ChatTypeUser])

	// openChatDetails sorted by age descending
	ages := make([]float64, 0, len(metrics.OpenChatDetails))
	for _, d := range metrics.OpenChatDetails {
		ages = append(ages, d.AgeInHours)
	}
	for i := 1; i < len(ages); i++ {
		assert.LessOrEqual(t, ages[i], ages[i-1], "openChatDetails must be non-increasing in age")
	}
	assert.Equal(t, "answered", metrics.OpenChatDetails[0].ChatId)

	delayed := metrics.DelayedResponseDetails[0]
	assert.Equal(t, "overdue", delayed.ChatId)
	assert.True(t, delayed.SenderIsCustomer)
	assert.InDelta(t, 30.0, delayed.HoursWithoutResponse, 0.01)
	assert.Equal(t, 103, len(delayed.MessagePreview), "preview is 100 chars plus ellipsis")
	assert.True(t, strings.HasSuffix(delayed.MessagePreview, "..."))
}

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chat := &entity.ChatRecord{
		ChatId: "one",
		Type:   entity.ChatTypeUser,
		LatestMessage: &entity.MessageSummary{
			Timestamp: now.Add(-30 * time.Hour),
			FromMe:    ptrBool(false),
		},
	}

	classified := Classify(chat, now, DefaultPolicy())

	assert.True(t, classified.IsOpen)
	assert.True(t, classified.RequiresResponse)
	assert.True(t, classified.ValidAge)
	assert.Equal(t, entity.ActivityFromMessage, classified.LastActivityMethod)
	assert.InDelta(t, 30.0, classified.AgeInHours, 0.01)
	assert.Equal(t, entity.UrgencyMedium, classified.UrgencyLevel)
}

func TestAggregate_PreviewRuneSafe(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	chat := &entity.ChatRecord{
		ChatId: "uni",
		Type:   entity.ChatTypeUser,
		LatestMessage: &entity.MessageSummary{
			Timestamp: now.Add(-30 * time.Hour),
			FromMe:    ptrBool(false),
			Body:      strings.Repeat("é", 150),
		},
	}

	metrics := Aggregate([]*entity.ChatRecord{chat}, now, DefaultPolicy())

	require.Len(t, metrics.DelayedResponseDetails, 1)
	got := metrics.DelayedResponseDetails[0].MessagePreview
	assert.True(t, utf8.ValidString(got), "preview must never split a rune")
	assert.Equal(t, previewLimit+3, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestAggregate_Empty(t *testing.T) {
	metrics := Aggregate(nil, time.Now(), DefaultPolicy())

	assert.Equal(t, 0, metrics.TotalOpenChats)
	assert.Equal(t, 0.0, metrics.AverageAgeInHours)
	assert.Equal(t, 0.0, metrics.MaxAgeInHours)
	assert.Empty(t, metrics.OpenChatDetails)
	assert.Empty(t, metrics.DelayedResponseDetails)
}

func TestAggregate_DelayedSortedByWait(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mk := func(id string, waitHours int) *entity.ChatRecord {
		return &entity.ChatRecord{
			ChatId: id,
			Type:   entity.ChatTypeUser,
			LatestMessage: &entity.MessageSummary{
				Timestamp: now.Add(-time.Duration(waitHours) * time.Hour),
				FromMe:    ptrBool(false),
			},
		}
	}

	metrics := Aggregate([]*entity.ChatRecord{mk("a", 30), mk("b", 90), mk("c", 50)}, now, DefaultPolicy())

	require.Len(t, metrics.DelayedResponseDetails, 3)
	assert.Equal(t, "b", metrics.DelayedResponseDetails[0].ChatId)
	assert.Equal(t, "c", metrics.DelayedResponseDetails[1].ChatId)
	assert.Equal(t, "a", metrics.DelayedResponseDetails[2].ChatId)
}

func TestAggregate_NoMessageWaitDiffersFromAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-80 * time.Hour)

	chat := &entity.ChatRecord{
		ChatId:    "quiet",
		Type:      entity.ChatTypeUser,
		CreatedAt: now.Add(-100 * time.Hour),
		UpdatedAt: &updated,
	}

	metrics := Aggregate([]*entity.ChatRecord{chat}, now, DefaultPolicy())

	require.Len(t, metrics.DelayedResponseDetails, 1)
	// no customer message to measure from: wait falls back to last activity
	assert.InDelta(t, 80.0, metrics.DelayedResponseDetails[0].HoursWithoutResponse, 0.01)
	assert.InDelta(t, 80.0, metrics.OpenChatDetails[0].AgeInHours, 0.01)
	assert.Equal(t, entity.UrgencyMedium, metrics.DelayedResponseDetails[0].UrgencyLevel)
}
