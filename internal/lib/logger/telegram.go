package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// Notifier is the piece of the Telegram bot the log handler needs.
type Notifier interface {
	SendMessage(msg string)
}

// telegramHandler fans records at or above its level out to the ops chat,
// then hands them to the wrapped handler unchanged.
type telegramHandler struct {
	next     slog.Handler
	notifier Notifier
	minLevel slog.Level
}

// SetupTelegramHandler layers Telegram alerting on top of an existing logger.
// Only records at alertLevel or above are forwarded.
func SetupTelegramHandler(log *slog.Logger, notifier Notifier, alertLevel slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:     log.Handler(),
		notifier: notifier,
		minLevel: alertLevel,
	})
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.minLevel && h.notifier != nil {
		text := fmt.Sprintf("%s: %s", r.Level.String(), r.Message)
		r.Attrs(func(a slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %s", a.Key, a.Value.String())
			return true
		})
		go h.notifier.SendMessage(text)
	}
	return h.next.Handle(ctx, r)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &telegramHandler{
		next:     h.next.WithAttrs(attrs),
		notifier: h.notifier,
		minLevel: h.minLevel,
	}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{
		next:     h.next.WithGroup(name),
		notifier: h.notifier,
		minLevel: h.minLevel,
	}
}
