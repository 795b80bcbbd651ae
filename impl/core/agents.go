package core

import (
	"ChatPulse/entity"
	"fmt"
)

func (c *Core) ListAgents() ([]entity.Agent, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository is not set")
	}
	return c.repo.GetAllAgents()
}

func (c *Core) AddAgent(agent entity.Agent) error {
	if c.repo == nil {
		return fmt.Errorf("repository is not set")
	}
	return c.repo.UpsertAgent(agent)
}

func (c *Core) RemoveAgent(phone string) error {
	if c.repo == nil {
		return fmt.Errorf("repository is not set")
	}
	if phone == "" {
		return fmt.Errorf("phone is required")
	}
	return c.repo.RemoveAgent(phone)
}
