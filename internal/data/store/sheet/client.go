// Package sheet talks to the remote spreadsheet web endpoint. The endpoint
// is a single URL dispatching on an action query parameter, the way a
// sheet-bound web app script exposes its table.
package sheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

// Client implements store.Store against the remote endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the endpoint at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) buildRequest(ctx context.Context, method, action string, body any) (*http.Request, error) {
	params := url.Values{}
	params.Set("action", action)
	fullURL := c.baseURL + "?" + params.Encode()

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", action, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) doRequest(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("endpoint error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// Events fetches all recorded doses.
func (c *Client) Events(ctx context.Context) ([]dose.Raw, error) {
	req, err := c.buildRequest(ctx, http.MethodGet, "get", nil)
	if err != nil {
		return nil, err
	}

	data, err := c.doRequest(req)
	if err != nil {
		return nil, err
	}

	var records []dose.Raw
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}
	return records, nil
}

// Append records one dose on the sheet.
func (c *Client) Append(ctx context.Context, record dose.Raw) error {
	req, err := c.buildRequest(ctx, http.MethodPost, "add", record)
	if err != nil {
		return err
	}
	if _, err := c.doRequest(req); err != nil {
		return err
	}
	return nil
}

type removeRequest struct {
	Timestamp string `json:"timestamp"`
}

type removeResponse struct {
	Removed bool `json:"removed"`
}

// Remove deletes the latest exact timestamp match on the sheet.
func (c *Client) Remove(ctx context.Context, timestamp string) (bool, error) {
	req, err := c.buildRequest(ctx, http.MethodPost, "remove", removeRequest{Timestamp: timestamp})
	if err != nil {
		return false, err
	}

	data, err := c.doRequest(req)
	if err != nil {
		return false, err
	}

	var resp removeResponse
	if err := sonic.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("parsing remove response: %w", err)
	}
	return resp.Removed, nil
}

// Close satisfies store.Store; the HTTP client holds no resources to release.
func (c *Client) Close() error { return nil }
