// Package gateway holds the outbound HTTP client the services use to call
// each other. The caller's bearer token is forwarded unchanged, so the
// downstream service authorizes the original principal, not this process.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError carries a downstream failure back to the original caller with
// the downstream status and message untouched. No retry, no fallback.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do issues the request and returns the downstream data payload. A non-2xx
// response becomes a StatusError with the downstream status and message.
func (c *Client) Do(ctx context.Context, method, path, authorization string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}

	return env.Data, nil
}

func (c *Client) Get(ctx context.Context, path, authorization string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, authorization, nil)
}

func (c *Client) Post(ctx context.Context, path, authorization string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, authorization, body)
}

func (c *Client) Put(ctx context.Context, path, authorization string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, authorization, body)
}

func (c *Client) Delete(ctx context.Context, path, authorization string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, authorization, nil)
}
