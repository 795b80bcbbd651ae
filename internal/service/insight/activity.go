package insight

import (
	"ChatPulse/entity"
	"time"
)

// maxAge guards against corrupted upstream timestamps: anything that claims
// to be older than a year is clamped and flagged invalid.
const maxAge = 365 * 24 * time.Hour

const fallbackAge = time.Hour

// ResolveActivity picks the single best last-activity timestamp for a chat.
//
// For user and business chats the priority is latest message, then updated_at,
// then created_at. Group activity can be a membership or settings change that
// never produces a message, so for groups the later of latest message and
// updated_at wins when both are present.
//
// The valid flag is true only when the timestamp came from an actual activity
// signal (message or updated_at); creation time and fallbacks are not evidence
// of activity and are excluded from age aggregates.
func ResolveActivity(chat *entity.ChatRecord, now time.Time) (time.Time, entity.ActivityMethod, bool) {
	var resolved time.Time
	var method entity.ActivityMethod
	valid := false

	msgTime := time.Time{}
	if chat.LatestMessage != nil {
		msgTime = chat.LatestMessage.Timestamp
	}

	switch {
	case chat.Type == entity.ChatTypeGroup && !msgTime.IsZero() && chat.UpdatedAt != nil:
		if chat.UpdatedAt.After(msgTime) {
			resolved, method = *chat.UpdatedAt, entity.ActivityFromUpdated
		} else {
			resolved, method = msgTime, entity.ActivityFromMessage
		}
		valid = true
	case !msgTime.IsZero():
		resolved, method, valid = msgTime, entity.ActivityFromMessage, true
	case chat.UpdatedAt != nil:
		resolved, method, valid = *chat.UpdatedAt, entity.ActivityFromUpdated, true
	case !chat.CreatedAt.IsZero():
		resolved, method = chat.CreatedAt, entity.ActivityFromCreated
	default:
		resolved, method = now.Add(-fallbackAge), entity.ActivityFromFallback
	}

	if resolved.After(now) {
		return now, entity.ActivityFromCorrected, false
	}
	if now.Sub(resolved) > maxAge {
		return now.Add(-maxAge), method, false
	}

	return resolved, method, valid
}
