package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"drivedash/models"
)

// Rename changes an item's name.
func (c *Client) Rename(ctx context.Context, itemType models.ItemType, id, name string) error {
	return c.doJSON(ctx, http.MethodPatch, itemPath(itemType, id), nil, models.RenameRequest{Name: name}, nil)
}

// SignedURL exchanges a storage path for a time-limited access URL.
func (c *Client) SignedURL(ctx context.Context, storagePath string) (string, error) {
	var resp models.SignedURLResponse
	if err := c.doJSON(ctx, http.MethodPost, "/files/signed-url", nil, models.SignedURLRequest{Path: storagePath}, &resp); err != nil {
		return "", err
	}
	if resp.SignedURL == "" {
		return "", errors.New("server returned no signed URL")
	}
	return resp.SignedURL, nil
}

// Upload streams one file to folderID (nil for the root).
func (c *Client) Upload(ctx context.Context, src models.UploadSource, folderID *string) (models.Item, error) {
	file, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src.Name, err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer file.Close()
		pw.CloseWithError(writeUploadForm(mw, src, file, folderID))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", pr)
	if err != nil {
		pr.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	data, err := c.do(req)
	pr.Close()
	if err != nil {
		return nil, err
	}
	return decodeItem(data)
}

func writeUploadForm(mw *multipart.Writer, src models.UploadSource, r io.Reader, folderID *string) error {
	if folderID != nil {
		if err := mw.WriteField("folderId", *folderID); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, src.Name))
	contentType := src.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	return mw.Close()
}
