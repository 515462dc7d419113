package services

import (
	"context"
	"net/http"
	"net/url"

	"drivedash/models"
)

// Trash soft-deletes an item. Folders and files are separate resources.
func (c *Client) Trash(ctx context.Context, itemType models.ItemType, id string) error {
	return c.doJSON(ctx, http.MethodPost, itemPath(itemType, id)+"/trash", nil, nil, nil)
}

func itemPath(itemType models.ItemType, id string) string {
	return "/files/" + string(itemType) + "/" + url.PathEscape(id)
}
