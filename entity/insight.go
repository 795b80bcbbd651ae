package entity

import (
	"strings"
	"time"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// ActivityMethod tags which field the resolver picked the last-activity
// timestamp from, so a stale number can be traced back to its source.
type ActivityMethod string

const (
	ActivityFromMessage   ActivityMethod = "latest_message"
	ActivityFromUpdated   ActivityMethod = "updated_at"
	ActivityFromCreated   ActivityMethod = "created_at"
	ActivityFromFallback  ActivityMethod = "fallback"
	ActivityFromCorrected ActivityMethod = "corrected"
)

// ClassifiedChat is the per-chat verdict of the classification pipeline.
type ClassifiedChat struct {
	Chat               *ChatRecord    `json:"-"`
	AgeInHours         float64        `json:"age_in_hours"`
	IsOpen             bool           `json:"is_open"`
	UrgencyLevel       UrgencyLevel   `json:"urgency_level"`
	RequiresResponse   bool           `json:"requires_response"`
	LastActivity       time.Time      `json:"last_activity"`
	LastActivityMethod ActivityMethod `json:"last_activity_method"`
	ValidAge           bool           `json:"valid_age"`
}

type OpenChatDetail struct {
	ChatId           string       `json:"chat_id"`
	ChatName         string       `json:"chat_name"`
	ChatType         ChatType     `json:"chat_type"`
	AgeInHours       float64      `json:"age_in_hours"`
	AssignedTo       string       `json:"assigned_to,omitempty"`
	IsAssigned       bool         `json:"is_assigned"`
	LastActivity     string       `json:"last_activity"`
	MemberCount      int          `json:"member_count,omitempty"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
	RequiresResponse bool         `json:"requires_response"`
}

type DelayedChatDetail struct {
	ChatId               string       `json:"chat_id"`
	ChatName             string       `json:"chat_name"`
	ChatType             ChatType     `json:"chat_type"`
	AssignedTo           string       `json:"assigned_to,omitempty"`
	HoursWithoutResponse float64      `json:"hours_without_response"`
	SenderIsCustomer     bool         `json:"sender_is_customer"`
	UrgencyLevel         UrgencyLevel `json:"urgency_level"`
	MessagePreview       string       `json:"message_preview,omitempty"`
}

type Metrics struct {
	TotalOpenChats           int                 `json:"total_open_chats"`
	AverageAgeInHours        float64             `json:"average_age_in_hours"`
	MaxAgeInHours            float64             `json:"max_age_in_hours"`
	ChatsWithDelayedResponse int                 `json:"chats_with_delayed_response"`
	OpenChatDetails          []OpenChatDetail    `json:"open_chat_details"`
	DelayedResponseDetails   []DelayedChatDetail `json:"delayed_response_details"`
	Diagnostics              *Diagnostics        `json:"diagnostics,omitempty"`
}

// StatsFilter narrows one metrics request. Empty fields mean "all".
type StatsFilter struct {
	Types []ChatType
	Phone string
	Agent string
}

func (f StatsFilter) Describe() string {
	parts := make([]string, 0, 3)
	if len(f.Types) > 0 {
		names := make([]string, len(f.Types))
		for i, t := range f.Types {
			names[i] = string(t)
		}
		parts = append(parts, "types="+strings.Join(names, ","))
	}
	if f.Phone != "" {
		parts = append(parts, "phone="+f.Phone)
	}
	if f.Agent != "" {
		parts = append(parts, "agent="+f.Agent)
	}
	if len(parts) == 0 {
		return "all chats"
	}
	return strings.Join(parts, " ")
}

// Diagnostics is observability payload, not part of the functional contract.
type Diagnostics struct {
	CountsByType   map[ChatType]int   `json:"counts_by_type"`
	SkippedRecords int                `json:"skipped_records"`
	Filter         string             `json:"filter,omitempty"`
	ThresholdsUsed map[string]float64 `json:"thresholds_used"`
}
