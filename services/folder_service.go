package services

import (
	"context"
	"net/http"
	"net/url"

	"drivedash/models"
)

// ListContents returns the direct children of folderID (nil for the root),
// ordered by the server according to sortBy and sortOrder.
func (c *Client) ListContents(ctx context.Context, folderID *string, sortBy, sortOrder string) ([]models.Item, error) {
	query := url.Values{}
	if folderID != nil {
		query.Set("folderId", *folderID)
	}
	if sortBy != "" {
		query.Set("sortBy", sortBy)
	}
	if sortOrder != "" {
		query.Set("sortOrder", sortOrder)
	}
	return c.getItems(ctx, "/files/contents", query)
}

// CreateFolder creates name under parentID (nil for the root).
func (c *Client) CreateFolder(ctx context.Context, name string, parentID *string) (models.Item, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/files/folders", nil,
		models.CreateFolderRequest{Name: name, ParentFolderID: parentID})
	if err != nil {
		return nil, err
	}
	data, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeItem(data)
}
