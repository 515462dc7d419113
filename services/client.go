package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"drivedash/metrics"
	"drivedash/middleware"
	"drivedash/models"
	"drivedash/utils"

	"go.uber.org/zap"
)

// Gateway is the remote content service as the dashboard sees it.
type Gateway interface {
	ListContents(ctx context.Context, folderID *string, sortBy, sortOrder string) ([]models.Item, error)
	Search(ctx context.Context, term string) ([]models.Item, error)
	SharedWithMe(ctx context.Context) ([]models.Item, error)
	CreateFolder(ctx context.Context, name string, parentID *string) (models.Item, error)
	Rename(ctx context.Context, itemType models.ItemType, id, name string) error
	Trash(ctx context.Context, itemType models.ItemType, id string) error
	Share(ctx context.Context, req models.ShareRequest) (string, error)
	PublicLink(ctx context.Context, itemID string) (string, error)
	SignedURL(ctx context.Context, storagePath string) (string, error)
	Upload(ctx context.Context, src models.UploadSource, folderID *string) (models.Item, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the text shown in notices.
func (e *StatusError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// ClientConfig holds gateway configuration.
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Tokens    middleware.TokenSource
	Transport http.RoundTripper
}

// Client talks to the content service over HTTP. Every request carries the
// session token; without one it fails before reaching the network.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Gateway = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &middleware.AuthTransport{
				Base:   metrics.InstrumentTransport(cfg.Transport),
				Tokens: cfg.Tokens,
			},
		},
	}
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and returns the body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		utils.LogDebug("gateway request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	utils.LogDebug("gateway request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: utils.ErrorMessage(data)}
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newJSONRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(utils.Unenvelope(data), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getItems(ctx context.Context, path string, query url.Values) ([]models.Item, error) {
	var records []models.Record
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &records); err != nil {
		return nil, err
	}
	return models.ItemsFromRecords(records)
}

func decodeItem(data []byte) (models.Item, error) {
	var record models.Record
	if err := json.Unmarshal(utils.Unenvelope(data), &record); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return record.ToItem()
}
