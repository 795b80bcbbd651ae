package insight

import (
	"ChatPulse/entity"
	"math"
	"time"
)

// Urgency is the per-chat verdict of the conversation-turn rule.
type Urgency struct {
	Level            entity.UrgencyLevel
	RequiresResponse bool

	// AgeInHours is measured from the resolved last activity.
	AgeInHours float64

	// WaitHours is measured from the customer's latest message when one
	// exists, and from last activity on the no-message path, so it can
	// differ from AgeInHours.
	WaitHours float64

	SenderIsCustomer bool
}

// SenderIsSupport attributes the latest message. Priority: the gateway's
// explicit from-me flag, then sender phone equal to the chat's org phone,
// then membership in the known support roster. Anything still ambiguous is
// treated as customer-sent so a potentially overdue chat is flagged rather
// than hidden.
func SenderIsSupport(chat *entity.ChatRecord, supportPhones map[string]struct{}) bool {
	msg := chat.LatestMessage
	if msg == nil {
		return false
	}
	if msg.FromMe != nil {
		return *msg.FromMe
	}
	if msg.SenderPhone != "" && msg.SenderPhone == chat.OrgPhone {
		return true
	}
	if _, ok := supportPhones[msg.SenderPhone]; ok && msg.SenderPhone != "" {
		return true
	}
	return false
}

// ClassifyUrgency applies the conversation-turn rule: a chat requires a
// response iff the latest message is customer-sent and has waited past the
// type's overdue threshold. A support-sent latest message never flags the
// chat, no matter how old. Chats with no message at all fall back to a
// longer, age-based threshold and come out medium at most.
func ClassifyUrgency(chat *entity.ChatRecord, lastActivity time.Time, now time.Time, p Policy) Urgency {
	tp := p.ForType(chat.Type)

	age := round2(hoursBetween(lastActivity, now))

	if chat.LatestMessage == nil || chat.LatestMessage.Timestamp.IsZero() {
		u := Urgency{
			Level:            entity.UrgencyLow,
			AgeInHours:       age,
			WaitHours:        age,
			SenderIsCustomer: true,
		}
		if age > tp.NoMessageHours {
			u.RequiresResponse = true
			u.Level = entity.UrgencyMedium
		}
		return u
	}

	fromSupport := SenderIsSupport(chat, p.SupportPhones)
	// the message timestamp gets the same one-year clamp as resolved activity,
	// so a corrupted ancient message cannot dominate the delayed list
	wait := hoursBetween(chat.LatestMessage.Timestamp, now)
	if limit := maxAge.Hours(); wait > limit {
		wait = limit
	}
	wait = round2(wait)

	u := Urgency{
		Level:            entity.UrgencyLow,
		AgeInHours:       age,
		WaitHours:        wait,
		SenderIsCustomer: !fromSupport,
	}
	if fromSupport {
		return u
	}

	u.RequiresResponse = wait > tp.OverdueHours
	u.Level = tierFor(wait, tp)
	if u.RequiresResponse && u.Level == entity.UrgencyLow {
		// overdue is never "low": the overdue threshold can sit below the
		// medium band for some types
		u.Level = entity.UrgencyMedium
	}
	return u
}

func tierFor(waitHours float64, tp TypePolicy) entity.UrgencyLevel {
	switch {
	case waitHours > tp.CriticalAfterHours:
		return entity.UrgencyCritical
	case waitHours > tp.HighAfterHours:
		return entity.UrgencyHigh
	case waitHours > tp.MediumAfterHours:
		return entity.UrgencyMedium
	default:
		return entity.UrgencyLow
	}
}

func hoursBetween(from, to time.Time) float64 {
	h := to.Sub(from).Hours()
	if h < 0 {
		return 0
	}
	return h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
