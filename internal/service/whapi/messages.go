package whapi

import (
	"ChatPulse/entity"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

type messagesPage struct {
	Messages []messageDTO `json:"messages"`
	Total    int          `json:"total"`
}

// FetchMessages pulls messages newer than the cutoff, for the heatmap fold.
// The gateway returns newest first, so paging stops at the first message
// older than the window.
func (s *Service) FetchMessages(ctx context.Context, days int, now time.Time) ([]entity.MessageSummary, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	var msgs []entity.MessageSummary
	for offset := 0; ; offset += s.pageSize {
		q := url.Values{}
		q.Set("count", fmt.Sprint(s.pageSize))
		q.Set("offset", fmt.Sprint(offset))

		var page messagesPage
		err := s.getJSON(ctx, fmt.Sprintf("%s/messages/list?%s", s.baseUrl, q.Encode()), &page)
		if err != nil {
			return nil, fmt.Errorf("fetch messages at offset %d: %w", offset, err)
		}
		if len(page.Messages) == 0 {
			break
		}

		reachedCutoff := false
		for _, dto := range page.Messages {
			if dto.Timestamp <= 0 {
				continue
			}
			ts := time.Unix(dto.Timestamp, 0).UTC()
			if ts.Before(cutoff) {
				reachedCutoff = true
				break
			}
			msgs = append(msgs, entity.MessageSummary{
				Timestamp:   ts,
				FromMe:      dto.FromMe,
				SenderPhone: dto.From,
				Body:        dto.Text.Body,
			})
		}
		if reachedCutoff || len(page.Messages) < s.pageSize {
			break
		}
	}

	s.log.With(
		slog.Int("days", days),
		slog.Int("messages", len(msgs)),
	).Debug("messages fetched")
	return msgs, nil
}
