package entity

import (
	"time"
)

type ChatType string

const (
	ChatTypeUser     ChatType = "user"
	ChatTypeGroup    ChatType = "group"
	ChatTypeBusiness ChatType = "business"
)

func (t ChatType) Valid() bool {
	return t == ChatTypeUser || t == ChatTypeGroup || t == ChatTypeBusiness
}

// ChatRecord is one conversation thread as reported by the WhatsApp gateway.
// Optional fields are pointers: the gateway omits them freely and absence
// carries meaning (a chat without ClosedAt was never explicitly closed).
type ChatRecord struct {
	ChatId        string          `json:"chat_id"`
	Name          string          `json:"name"`
	Type          ChatType        `json:"type"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
	ClosedAt      *time.Time      `json:"closed_at,omitempty"`
	IsExited      bool            `json:"is_exited"`
	MemberCount   *int            `json:"member_count,omitempty"`
	AssignedTo    string          `json:"assigned_to,omitempty"`
	OrgPhone      string          `json:"org_phone"`
	LatestMessage *MessageSummary `json:"latest_message,omitempty"`
}

// MessageSummary is the reduced projection of the newest message on a chat.
type MessageSummary struct {
	Timestamp   time.Time `json:"timestamp"`
	FromMe      *bool     `json:"from_me,omitempty"` // gateway "sent by us" flag, nil when ambiguous
	SenderPhone string    `json:"sender_phone,omitempty"`
	Body        string    `json:"body,omitempty"`
}
