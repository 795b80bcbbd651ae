package insight

import (
	"ChatPulse/entity"
	"sort"
	"time"
)

const previewLimit = 100

// Classify runs the resolver and the urgency classifier for one chat.
func Classify(chat *entity.ChatRecord, now time.Time, p Policy) entity.ClassifiedChat {
	lastActivity, method, valid := ResolveActivity(chat, now)
	u := ClassifyUrgency(chat, lastActivity, now, p)

	return entity.ClassifiedChat{
		Chat:               chat,
		AgeInHours:         u.AgeInHours,
		IsOpen:             true,
		UrgencyLevel:       u.Level,
		RequiresResponse:   u.RequiresResponse,
		LastActivity:       lastActivity,
		LastActivityMethod: method,
		ValidAge:           valid,
	}
}

// Aggregate folds a list of open chats into the dashboard metrics. The input
// is assumed to be deduplicated and openness-filtered already. Records that
// are malformed beyond the resolver's clamping (no chat id) are skipped and
// counted, never aborting the rest of the fold.
func Aggregate(chats []*entity.ChatRecord, now time.Time, p Policy) entity.Metrics {
	metrics := entity.Metrics{
		OpenChatDetails:        make([]entity.OpenChatDetail, 0, len(chats)),
		DelayedResponseDetails: make([]entity.DelayedChatDetail, 0),
	}
	diag := &entity.Diagnostics{
		CountsByType: make(map[entity.ChatType]int),
		ThresholdsUsed: map[string]float64{
			"user_overdue_hours":     p.User.OverdueHours,
			"group_overdue_hours":    p.Group.OverdueHours,
			"business_overdue_hours": p.Business.OverdueHours,
		},
	}

	var totalAge, oldest float64
	validAgeCount := 0

	for _, chat := range chats {
		if chat == nil || chat.ChatId == "" {
			diag.SkippedRecords++
			continue
		}

		lastActivity, _, valid := ResolveActivity(chat, now)
		u := ClassifyUrgency(chat, lastActivity, now, p)
		diag.CountsByType[chat.Type]++
		metrics.TotalOpenChats++

		if valid {
			totalAge += u.AgeInHours
			validAgeCount++
			if u.AgeInHours > oldest {
				oldest = u.AgeInHours
			}
		}

		memberCount := 0
		if chat.MemberCount != nil {
			memberCount = *chat.MemberCount
		}
		metrics.OpenChatDetails = append(metrics.OpenChatDetails, entity.OpenChatDetail{
			ChatId:           chat.ChatId,
			ChatName:         chat.Name,
			ChatType:         chat.Type,
			AgeInHours:       u.AgeInHours,
			AssignedTo:       chat.AssignedTo,
			IsAssigned:       chat.AssignedTo != "",
			LastActivity:     lastActivity.UTC().Format(time.RFC3339),
			MemberCount:      memberCount,
			UrgencyLevel:     u.Level,
			RequiresResponse: u.RequiresResponse,
		})

		if u.RequiresResponse {
			metrics.DelayedResponseDetails = append(metrics.DelayedResponseDetails, entity.DelayedChatDetail{
				ChatId:               chat.ChatId,
				ChatName:             chat.Name,
				ChatType:             chat.Type,
				AssignedTo:           chat.AssignedTo,
				HoursWithoutResponse: u.WaitHours,
				SenderIsCustomer:     u.SenderIsCustomer,
				UrgencyLevel:         u.Level,
				MessagePreview:       preview(chat),
			})
		}
	}

	if validAgeCount > 0 {
		metrics.AverageAgeInHours = round2(totalAge / float64(validAgeCount))
	}
	metrics.MaxAgeInHours = round2(oldest)

	sort.SliceStable(metrics.OpenChatDetails, func(i, j int) bool {
		return metrics.OpenChatDetails[i].AgeInHours > metrics.OpenChatDetails[j].AgeInHours
	})
	sort.SliceStable(metrics.DelayedResponseDetails, func(i, j int) bool {
		return metrics.DelayedResponseDetails[i].HoursWithoutResponse > metrics.DelayedResponseDetails[j].HoursWithoutResponse
	})

	metrics.ChatsWithDelayedResponse = len(metrics.DelayedResponseDetails)
	metrics.Diagnostics = diag
	return metrics
}

func preview(chat *entity.ChatRecord) string {
	if chat.LatestMessage == nil {
		return ""
	}
	body := chat.LatestMessage.Body
	// truncate on rune boundaries, not bytes
	runes := []rune(body)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return body
}
