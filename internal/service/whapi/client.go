package whapi

import (
	"ChatPulse/internal/config"
	"ChatPulse/internal/lib/sl"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	maxAttempts    = 4
	initialBackoff = 500 * time.Millisecond
	fetchWorkers   = 2
)

// Service talks to the Whapi-style WhatsApp gateway. It owns pagination,
// rate-limit retries and cross-page deduplication; callers get back a clean,
// duplicate-free list of chat records.
type Service struct {
	token    string
	baseUrl  string
	pageSize int
	client   *http.Client
	log      *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	pageSize := conf.Whapi.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Service{
		token:    conf.Whapi.Token,
		baseUrl:  conf.Whapi.BaseUrl,
		pageSize: pageSize,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      logger.With(sl.Module("whapi service")),
	}
}

// getJSON issues one authorized GET and decodes the body into out, retrying
// with exponential backoff when the gateway answers 429.
func (s *Service) getJSON(ctx context.Context, url string, out interface{}) error {
	backoff := initialBackoff

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.token)

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("send HTTP: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if attempt >= maxAttempts {
				return fmt.Errorf("rate limited after %d attempts", attempt)
			}
			s.log.With(
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
			).Warn("rate limited, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return fmt.Errorf("gateway responded with %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}
