package agent

import "ChatPulse/entity"

type Core interface {
	ListAgents() ([]entity.Agent, error)
	AddAgent(agent entity.Agent) error
	RemoveAgent(phone string) error
}
