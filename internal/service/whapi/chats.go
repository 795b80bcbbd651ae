package whapi

import (
	"ChatPulse/entity"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"
)

type chatsPage struct {
	Chats []chatDTO `json:"chats"`
	Total int       `json:"total"`
}

type chatDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Timestamp   int64       `json:"timestamp"`
	UpdatedAt   int64       `json:"updated_at"`
	ClosedAt    int64       `json:"closed_at"`
	IsExited    bool        `json:"is_exited"`
	Size        *int        `json:"size"`
	AssignedTo  string      `json:"assigned_to"`
	LastMessage *messageDTO `json:"last_message"`
}

type messageDTO struct {
	Timestamp int64  `json:"timestamp"`
	FromMe    *bool  `json:"from_me"`
	From      string `json:"from"`
	Text      struct {
		Body string `json:"body"`
	} `json:"text"`
}

// FetchChats pulls every page of chats of the given type from the gateway and
// returns them deduplicated by chat id, most recently updated record winning.
// Pages after the first are fetched by a bounded pair of workers. The chat
// type and org phone are stamped onto each record; the gateway reports
// neither reliably.
func (s *Service) FetchChats(ctx context.Context, chatType entity.ChatType, orgPhone string) ([]*entity.ChatRecord, error) {
	first, err := s.fetchPage(ctx, chatType, 0)
	if err != nil {
		return nil, fmt.Errorf("fetch first page: %w", err)
	}

	pages := [][]chatDTO{first.Chats}
	if first.Total > s.pageSize {
		rest, err := s.fetchRemaining(ctx, chatType, first.Total)
		if err != nil {
			return nil, err
		}
		pages = append(pages, rest...)
	}

	records := dedupe(pages, chatType, orgPhone)
	s.log.With(
		slog.String("type", string(chatType)),
		slog.Int("total", first.Total),
		slog.Int("unique", len(records)),
	).Debug("chats fetched")
	return records, nil
}

func (s *Service) fetchPage(ctx context.Context, chatType entity.ChatType, offset int) (chatsPage, error) {
	q := url.Values{}
	q.Set("count", fmt.Sprint(s.pageSize))
	q.Set("offset", fmt.Sprint(offset))
	q.Set("type", string(chatType))

	var page chatsPage
	err := s.getJSON(ctx, fmt.Sprintf("%s/chats?%s", s.baseUrl, q.Encode()), &page)
	return page, err
}

func (s *Service) fetchRemaining(ctx context.Context, chatType entity.ChatType, total int) ([][]chatDTO, error) {
	offsets := make(chan int)
	go func() {
		defer close(offsets)
		for off := s.pageSize; off < total; off += s.pageSize {
			select {
			case offsets <- off:
			case <-ctx.Done():
				return
			}
		}
	}()

	var mu sync.Mutex
	var pages [][]chatDTO
	var firstErr error

	var wg sync.WaitGroup
	for i := 0; i < fetchWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for off := range offsets {
				page, err := s.fetchPage(ctx, chatType, off)
				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = fmt.Errorf("fetch page at offset %d: %w", off, err)
				}
				if err == nil {
					pages = append(pages, page.Chats)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return pages, nil
}

// dedupe merges paginated batches by chat id. When the gateway hands the same
// chat back on two pages, the record with the later updated_at (created_at
// when updated_at is missing) wins.
func dedupe(pages [][]chatDTO, chatType entity.ChatType, orgPhone string) []*entity.ChatRecord {
	byId := make(map[string]*entity.ChatRecord)
	order := make([]string, 0)

	for _, page := range pages {
		for _, dto := range page {
			record := dto.toRecord(chatType, orgPhone)
			if record.ChatId == "" {
				continue
			}
			existing, ok := byId[record.ChatId]
			if !ok {
				byId[record.ChatId] = record
				order = append(order, record.ChatId)
				continue
			}
			if freshness(record).After(freshness(existing)) {
				byId[record.ChatId] = record
			}
		}
	}

	records := make([]*entity.ChatRecord, 0, len(order))
	for _, id := range order {
		records = append(records, byId[id])
	}
	return records
}

func freshness(r *entity.ChatRecord) time.Time {
	if r.UpdatedAt != nil {
		return *r.UpdatedAt
	}
	return r.CreatedAt
}

func (d chatDTO) toRecord(chatType entity.ChatType, orgPhone string) *entity.ChatRecord {
	record := &entity.ChatRecord{
		ChatId:      d.ID,
		Name:        d.Name,
		Type:        chatType,
		IsExited:    d.IsExited,
		MemberCount: d.Size,
		AssignedTo:  d.AssignedTo,
		OrgPhone:    orgPhone,
	}
	if t := entity.ChatType(d.Type); t.Valid() {
		record.Type = t
	}
	if d.Timestamp > 0 {
		record.CreatedAt = time.Unix(d.Timestamp, 0).UTC()
	}
	if d.UpdatedAt > 0 {
		t := time.Unix(d.UpdatedAt, 0).UTC()
		record.UpdatedAt = &t
	}
	if d.ClosedAt > 0 {
		t := time.Unix(d.ClosedAt, 0).UTC()
		record.ClosedAt = &t
	}
	if d.LastMessage != nil && d.LastMessage.Timestamp > 0 {
		record.LatestMessage = &entity.MessageSummary{
			Timestamp:   time.Unix(d.LastMessage.Timestamp, 0).UTC(),
			FromMe:      d.LastMessage.FromMe,
			SenderPhone: d.LastMessage.From,
			Body:        d.LastMessage.Text.Body,
		}
	}
	return record
}
