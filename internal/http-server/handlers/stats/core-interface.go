package stats

import (
	"ChatPulse/entity"
	"context"
)

type Core interface {
	OpenChatMetrics(ctx context.Context, filter entity.StatsFilter) (*entity.Metrics, error)
	Heatmap(ctx context.Context, days int) (*entity.Heatmap, error)
}
