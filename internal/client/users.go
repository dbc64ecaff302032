package client

import (
	"context"
	"encoding/json"
	"fmt"

	nhhttp "github.com/nerves-hub/nerveshub-go/internal/http"
	"github.com/nerves-hub/nerveshub-go/pkg/nerveshub"
)

// UsersClient implements nerveshub.UsersClient
type UsersClient struct {
	httpClient *nhhttp.Client
}

// NewUsersClient creates a new users client
func NewUsersClient(httpClient *nhhttp.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Me implements nerveshub.UsersClient.Me
func (c *UsersClient) Me(ctx context.Context) (*nerveshub.User, error) {
	resp, err := c.httpClient.Get(ctx, "/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting authenticated user: %w", err)
	}

	var result nerveshub.Envelope[nerveshub.User]
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &result.Data, nil
}
