package api

import (
	"context"
	"encoding/json"
	"fmt"

	"zenfolio/internal/models"
)

const userPath = "/v2/user"

// GetUser fetches the account the token belongs to
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	body, err := c.get(ctx, userPath, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", models.ErrMalformedResponse)
	}
	return &response.User, nil
}
