package core

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/sl"
	"context"
	"fmt"
	"time"
)

// SendDigest computes fresh metrics and pushes a short summary to the ops
// chat. Used by the scheduler in Init.
func (c *Core) SendDigest() {
	if c.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	metrics, err := c.OpenChatMetrics(ctx, entity.StatsFilter{})
	if err != nil {
		c.log.With(
			sl.Err(err),
		).Error("digest metrics")
		return
	}

	text := renderSummary(metrics)
	if c.digest != nil {
		composed, err := c.digest.ComposeDigest(metrics)
		if err != nil {
			c.log.With(
				sl.Err(err),
			).Warn("digest compose, falling back to plain summary")
		} else if composed != "" {
			text = composed
		}
	}

	c.notifier.SendMessage(text)
}

// StatsSummary answers the bot's /stats command with a one-screen summary.
func (c *Core) StatsSummary(ctx context.Context) string {
	metrics, err := c.OpenChatMetrics(ctx, entity.StatsFilter{})
	if err != nil {
		return fmt.Sprintf("stats unavailable: %v", err)
	}
	return renderSummary(metrics)
}

func renderSummary(metrics *entity.Metrics) string {
	text := fmt.Sprintf(
		"Open chats: %d\nAvg age: %.2fh\nMax age: %.2fh\nAwaiting reply: %d",
		metrics.TotalOpenChats,
		metrics.AverageAgeInHours,
		metrics.MaxAgeInHours,
		metrics.ChatsWithDelayedResponse,
	)

	limit := 5
	if len(metrics.DelayedResponseDetails) < limit {
		limit = len(metrics.DelayedResponseDetails)
	}
	for i := 0; i < limit; i++ {
		d := metrics.DelayedResponseDetails[i]
		text += fmt.Sprintf("\n%d. %s (%s) waiting %.1fh [%s]",
			i+1, d.ChatName, d.ChatType, d.HoursWithoutResponse, d.UrgencyLevel)
	}
	return text
}
