package core

import (
	"ChatPulse/entity"
	"fmt"
)

// AuthenticateByToken accepts the master API key from config or any key
// issued through the api-keys collection.
func (c *Core) AuthenticateByToken(token string) (*entity.UserAuth, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}
	if c.authKey != "" && token == c.authKey {
		return &entity.UserAuth{Username: "dashboard", Token: token}, nil
	}
	if c.repo == nil {
		return nil, fmt.Errorf("unknown token")
	}
	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return nil, fmt.Errorf("unknown token")
	}
	return &entity.UserAuth{Username: username, Token: token}, nil
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository is not set")
	}
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	return c.repo.GenerateApiKey(username)
}
