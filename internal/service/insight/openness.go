package insight

import (
	"ChatPulse/entity"
	"time"
)

// IsOpen decides whether a chat still needs monitoring. Pure function of the
// record; rules short-circuit in order:
//
//  1. support side left the group -> closed, permanently
//  2. degenerate group (<=1 member) -> closed
//  3. never explicitly closed -> open
//  4. closed and no message at all -> closed
//  5. a message newer than closed_at reopens the chat
//  6. otherwise (message at or before closed_at) -> closed
func IsOpen(chat *entity.ChatRecord, _ time.Time) bool {
	if chat.IsExited {
		return false
	}
	if chat.Type == entity.ChatTypeGroup && chat.MemberCount != nil && *chat.MemberCount <= 1 {
		return false
	}
	if chat.ClosedAt == nil {
		return true
	}
	if chat.LatestMessage == nil || chat.LatestMessage.Timestamp.IsZero() {
		return false
	}
	return chat.LatestMessage.Timestamp.After(*chat.ClosedAt)
}

// FilterOpen keeps only chats IsOpen accepts, preserving input order. Nil
// records pass through untouched; the aggregator counts them as skipped.
func FilterOpen(chats []*entity.ChatRecord, now time.Time) []*entity.ChatRecord {
	open := make([]*entity.ChatRecord, 0, len(chats))
	for _, chat := range chats {
		if chat == nil || IsOpen(chat, now) {
			open = append(open, chat)
		}
	}
	return open
}
