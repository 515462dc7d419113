package services

import (
	"context"
	"net/url"

	"drivedash/models"
)

// Search matches term across every item the user can access. Results are
// not scoped to a folder and ignore the sort option.
func (c *Client) Search(ctx context.Context, term string) ([]models.Item, error) {
	return c.getItems(ctx, "/files/search", url.Values{"q": {term}})
}

// SharedWithMe lists items other users have shared with the current user.
func (c *Client) SharedWithMe(ctx context.Context) ([]models.Item, error) {
	return c.getItems(ctx, "/files/shared-with-me", nil)
}
