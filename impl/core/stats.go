package core

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/sl"
	"ChatPulse/internal/service/insight"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// OpenChatMetrics is the dashboard's main operation: fetch, deduplicate,
// filter to open chats and fold them into metrics. Every call fetches fresh;
// nothing is cached between requests.
func (c *Core) OpenChatMetrics(ctx context.Context, filter entity.StatsFilter) (*entity.Metrics, error) {
	if c.source == nil {
		return nil, fmt.Errorf("chat source is not set")
	}

	now := time.Now()

	types := filter.Types
	if len(types) == 0 {
		types = []entity.ChatType{entity.ChatTypeUser, entity.ChatTypeGroup, entity.ChatTypeBusiness}
	}

	orgPhone := c.orgPhone
	if filter.Phone != "" {
		orgPhone = filter.Phone
	}

	var chats []*entity.ChatRecord
	for _, t := range types {
		batch, err := c.source.FetchChats(ctx, t, orgPhone)
		if err != nil {
			return nil, fmt.Errorf("fetch %s chats: %w", t, err)
		}
		chats = append(chats, batch...)
	}

	open := insight.FilterOpen(chats, now)
	if filter.Agent != "" {
		assigned := open[:0]
		for _, chat := range open {
			// nil records stay in for the aggregator's skip count
			if chat == nil || chat.AssignedTo == filter.Agent {
				assigned = append(assigned, chat)
			}
		}
		open = assigned
	}

	metrics := insight.Aggregate(open, now, c.requestPolicy())
	if metrics.Diagnostics != nil {
		metrics.Diagnostics.Filter = filter.Describe()
	}

	c.log.With(
		slog.Int("fetched", len(chats)),
		slog.Int("open", metrics.TotalOpenChats),
		slog.Int("delayed", metrics.ChatsWithDelayedResponse),
		slog.String("filter", filter.Describe()),
	).Info("metrics computed")

	return &metrics, nil
}

// Heatmap buckets recent message traffic by weekday and hour.
func (c *Core) Heatmap(ctx context.Context, days int) (*entity.Heatmap, error) {
	if c.source == nil {
		return nil, fmt.Errorf("chat source is not set")
	}

	now := time.Now()
	msgs, err := c.source.FetchMessages(ctx, days, now)
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	hm := insight.BuildHeatmap(msgs, days, now)
	return &hm, nil
}

// requestPolicy unions the configured support phones with the active agent
// roster. The roster is re-read per request; there is no cache to invalidate.
func (c *Core) requestPolicy() insight.Policy {
	policy := c.policy
	policy.SupportPhones = make(map[string]struct{}, len(c.policy.SupportPhones))
	for phone := range c.policy.SupportPhones {
		policy.SupportPhones[phone] = struct{}{}
	}

	if c.repo == nil {
		return policy
	}
	agents, err := c.repo.GetAllAgents()
	if err != nil {
		c.log.With(
			sl.Err(err),
		).Warn("agent roster unavailable, using configured phones only")
		return policy
	}
	for _, agent := range agents {
		if agent.Phone != "" {
			policy.SupportPhones[agent.Phone] = struct{}{}
		}
	}
	return policy
}
