package core

import (
	"ChatPulse/entity"
	"ChatPulse/internal/lib/sl"
	"ChatPulse/internal/service/insight"
	"context"
	"log/slog"
	"time"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)

	UpsertAgent(agent entity.Agent) error
	GetAllAgents() ([]entity.Agent, error)
	RemoveAgent(phone string) error
}

type ChatSource interface {
	FetchChats(ctx context.Context, chatType entity.ChatType, orgPhone string) ([]*entity.ChatRecord, error)
	FetchMessages(ctx context.Context, days int, now time.Time) ([]entity.MessageSummary, error)
}

type DigestService interface {
	ComposeDigest(metrics *entity.Metrics) (string, error)
}

type Notifier interface {
	SendMessage(msg string)
}

type Core struct {
	repo     Repository
	source   ChatSource
	digest   DigestService
	notifier Notifier
	policy   insight.Policy
	orgPhone string
	authKey  string
	log      *slog.Logger
}

func New(log *slog.Logger, policy insight.Policy) *Core {
	return &Core{
		log:    log.With(sl.Module("core")),
		policy: policy,
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

func (c *Core) SetChatSource(source ChatSource) {
	c.source = source
}

func (c *Core) SetDigestService(digest DigestService) {
	c.digest = digest
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetOrgPhone(phone string) {
	c.orgPhone = phone
}

// Init schedules the daily overdue-chats digest at 08:00 server time.
func (c *Core) Init() {
	if c.digest == nil || c.notifier == nil {
		return
	}
	go func() {
		for {
			now := time.Now()
			nextRun := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, now.Location())

			if now.After(nextRun) {
				nextRun = nextRun.Add(24 * time.Hour)
			}
			c.log.With(
				slog.Time("nextRun", nextRun),
			).Info("next digest scheduled")

			time.Sleep(time.Until(nextRun))

			c.SendDigest()
		}
	}()
}
