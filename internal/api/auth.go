package api

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"zenfolio/internal/models"
)

// Login verifies the token with a minimal listing and saves it to the token store.
// A rejected token surfaces as *models.AuthenticationError and is not saved.
func (c *Client) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.ErrEmptyToken
	}

	previous := c.AuthToken
	c.AuthToken = token
	if _, err := c.ListProjects(ctx, ListOptions{Limit: 1}); err != nil {
		c.AuthToken = previous
		return err
	}

	if c.tokenStore != nil {
		if err := c.tokenStore.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save auth token: %w", err)
		}
	}
	c.logger.Debug("token verified and stored")
	return nil
}

// Logout forgets the token locally. The API has no session to end.
func (c *Client) Logout() error {
	c.AuthToken = ""
	if c.tokenStore == nil {
		return nil
	}
	if err := c.tokenStore.ClearToken(); err != nil {
		c.logger.Warn("failed to clear token", zap.Error(err))
		return fmt.Errorf("failed to clear auth token: %w", err)
	}
	return nil
}
