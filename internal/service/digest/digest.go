package digest

import (
	"ChatPulse/entity"
	"ChatPulse/internal/config"
	"ChatPulse/internal/lib/sl"
	"context"
	"fmt"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"strings"
	"time"
)

const systemPrompt = `You are writing a short morning briefing for a WhatsApp support team lead.
You get raw metrics about open chats and chats awaiting a reply.
Write at most 6 lines, plain text, most urgent chats first. No greetings.`

type Service struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewDigestService(conf *config.Config, logger *slog.Logger) *Service {
	if !conf.OpenAI.Enabled || conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &Service{
		client: openai.NewClient(conf.OpenAI.ApiKey),
		model:  conf.OpenAI.Model,
		log:    logger.With(sl.Module("digest service")),
	}
}

// ComposeDigest turns the metrics into a short natural-language briefing.
// Callers must treat an error as "use the plain summary instead"; the digest
// is decoration, never the source of truth.
func (s *Service) ComposeDigest(metrics *entity.Metrics) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describe(metrics)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	s.log.Debug("digest composed")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describe(metrics *entity.Metrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "open chats: %d, average age %.2fh, max age %.2fh, awaiting reply: %d\n",
		metrics.TotalOpenChats,
		metrics.AverageAgeInHours,
		metrics.MaxAgeInHours,
		metrics.ChatsWithDelayedResponse,
	)
	for i, d := range metrics.DelayedResponseDetails {
		if i >= 10 {
			fmt.Fprintf(&b, "... and %d more\n", len(metrics.DelayedResponseDetails)-i)
			break
		}
		fmt.Fprintf(&b, "- %s (%s, %s): waiting %.1fh\n", d.ChatName, d.ChatType, d.UrgencyLevel, d.HoursWithoutResponse)
	}
	return b.String()
}
