package insight

import (
	"ChatPulse/entity"
	"ChatPulse/internal/config"
)

// TypePolicy carries the wait-time thresholds for one chat type. All values
// are hours. The overdue numbers are revised often, so they live in config
// and are never inlined in classification code.
type TypePolicy struct {
	OverdueHours   float64
	NoMessageHours float64

	CriticalAfterHours float64
	HighAfterHours     float64
	MediumAfterHours   float64
}

type Policy struct {
	User     TypePolicy
	Group    TypePolicy
	Business TypePolicy

	// SupportPhones is the known support-line numbers used as the last
	// fallback for sender attribution.
	SupportPhones map[string]struct{}
}

func DefaultPolicy() Policy {
	return Policy{
		Business: TypePolicy{
			OverdueHours:       12,
			NoMessageHours:     48,
			CriticalAfterHours: 168,
			HighAfterHours:     72,
			MediumAfterHours:   48,
		},
		User: TypePolicy{
			OverdueHours:       24,
			NoMessageHours:     72,
			CriticalAfterHours: 168,
			HighAfterHours:     72,
			MediumAfterHours:   48,
		},
		Group: TypePolicy{
			OverdueHours:       48,
			NoMessageHours:     96,
			CriticalAfterHours: 168,
			HighAfterHours:     120,
			MediumAfterHours:   72,
		},
		SupportPhones: map[string]struct{}{},
	}
}

// PolicyFromConfig overlays the configured thresholds and support roster on
// top of the defaults. Extra phones (e.g. from the agents collection) can be
// added later with AddSupportPhones.
func PolicyFromConfig(conf *config.Config) Policy {
	p := DefaultPolicy()

	p.Business.OverdueHours = conf.Policy.BusinessOverdueHours
	p.User.OverdueHours = conf.Policy.UserOverdueHours
	p.Group.OverdueHours = conf.Policy.GroupOverdueHours

	p.Business.NoMessageHours = conf.Policy.BusinessNoMessageHours
	p.User.NoMessageHours = conf.Policy.UserNoMessageHours
	p.Group.NoMessageHours = conf.Policy.GroupNoMessageHours

	p.AddSupportPhones(conf.Policy.SupportPhones)
	return p
}

func (p *Policy) AddSupportPhones(phones []string) {
	if p.SupportPhones == nil {
		p.SupportPhones = make(map[string]struct{}, len(phones))
	}
	for _, phone := range phones {
		if phone != "" {
			p.SupportPhones[phone] = struct{}{}
		}
	}
}

func (p Policy) ForType(t entity.ChatType) TypePolicy {
	switch t {
	case entity.ChatTypeGroup:
		return p.Group
	case entity.ChatTypeBusiness:
		return p.Business
	default:
		return p.User
	}
}
