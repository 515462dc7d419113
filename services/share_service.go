package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"drivedash/models"
)

// Share grants req.Email the requested role on an item and returns the
// server's confirmation message.
func (c *Client) Share(ctx context.Context, req models.ShareRequest) (string, error) {
	var resp models.ShareResponse
	if err := c.doJSON(ctx, http.MethodPost, "/files/share", nil, req, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "Shared successfully", nil
	}
	return resp.Message, nil
}

// PublicLink returns the public URL of a file.
func (c *Client) PublicLink(ctx context.Context, itemID string) (string, error) {
	var resp models.PublicLinkResponse
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+url.PathEscape(itemID)+"/public-link", nil, nil, &resp); err != nil {
		return "", err
	}
	if resp.PublicURL == "" {
		return "", errors.New("server returned no public link")
	}
	return resp.PublicURL, nil
}
